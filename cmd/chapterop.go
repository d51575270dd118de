package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// ChapterIO handles I/O for the add-chapter, delete-chapter and move-chapter commands.
type ChapterIO interface {
	FileReader
	FileWriter
}

// chapterOp is one of the project package operations, bound to its parameters.
type chapterOp func(ctx context.Context, p doc.Project) (doc.Project, []project.Diagnostic)

// runChapterOp loads the project, applies op, writes the result back when it
// changed and reports diagnostics. summary describes a successful change for
// human-readable output.
func runChapterOp(cmd *cobra.Command, io ChapterIO, getwd func() (string, error), jsonMode bool, op chapterOp, summary func(doc.Project) string) error {
	dir, err := resolveProjectDir(cmd, getwd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, io, dir)
	if err != nil {
		return emitOPE009AndError(cmd, jsonMode, err)
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	path := cfg.ProjectPath(dir)
	raw, err := readProjectFile(ctx, io, path)
	if err != nil {
		if errors.Is(err, errNotInitialized) {
			return err
		}
		return emitOPE009AndError(cmd, jsonMode, err)
	}
	p, err := doc.DecodeProject(bytes.NewReader(raw))
	if err != nil {
		return emitOPE009AndError(cmd, jsonMode, err)
	}
	log.Debug().Str("path", path).Int("chapters", len(p.Books)).Msg("loaded project")

	before, err := encodeProject(p)
	if err != nil {
		return err
	}
	out, diags := op(ctx, p)
	after, err := encodeProject(out)
	if err != nil {
		return err
	}

	failed := project.HasError(diags)
	changed := !failed && !bytes.Equal(before, after)
	if changed {
		if err := io.WriteFileAtomic(ctx, path, after); err != nil {
			return emitOPE009AndError(cmd, jsonMode, fmt.Errorf("writing project: %w", err))
		}
		log.Info().Str("path", path).Str("op", cmd.Name()).Msg("wrote project")
	}

	if jsonMode {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(project.NewResult(changed, diags)); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	} else {
		printDiagnostics(cmd, diags)
		if changed {
			fmt.Fprintln(cmd.OutOrStdout(), sanitizePath(summary(out)))
		}
	}

	if failed {
		return fmt.Errorf("%s failed", cmd.Name())
	}
	return nil
}
