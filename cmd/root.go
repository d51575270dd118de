// Package cmd implements the ink CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/config"
	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/logging"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// NewRootCmd creates the root ink command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ink",
		Short:         "ink - inkwell CLI for long-form writing projects",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (default from "+config.FileName+")")
	root.PersistentFlags().String("log-format", "json", "log format: json or console")

	fsys := newDefaultFileIO()
	ids := doc.RandomIDs{}
	root.AddCommand(NewInitCmd(fsys))
	root.AddCommand(NewParseCmd(fsys))
	root.AddCommand(NewNewDocumentCmd(ids))
	root.AddCommand(NewAddChapterCmd(fsys, ids))
	root.AddCommand(NewDeleteChapterCmd(fsys))
	root.AddCommand(NewMoveChapterCmd(fsys))
	root.AddCommand(NewDoctorCmd(fsys))
	root.AddCommand(NewThemesCmd(fsys, newDefaultSyncer))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// newLogger builds the command logger. The --log-level flag wins over the
// configured level; output goes to stderr so stdout stays machine-readable.
func newLogger(cmd *cobra.Command, cfg config.Config) (zerolog.Logger, error) {
	flagLevel, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case "", "json", "console":
	default:
		return zerolog.Nop(), fmt.Errorf("--log-format must be json or console, got %q", format)
	}
	return logging.New().
		FromWriter(cmd.ErrOrStderr()).
		WithLevel(cfg.LogLevel).
		WithLevel(flagLevel).
		Console(format == "console").
		Make()
}

// emitOPE009AndError writes an OPE009 error diagnostic and returns a non-nil
// error so the caller exits with non-zero code. When jsonMode is true the
// diagnostic is written as a project.OpResult JSON object to stdout; otherwise
// it is written as a human-readable message to stderr.
func emitOPE009AndError(cmd *cobra.Command, jsonMode bool, origErr error) error {
	if jsonMode {
		diags := []project.Diagnostic{{Severity: "error", Code: project.CodeIOOrParseFailure, Message: origErr.Error()}}
		_ = json.NewEncoder(cmd.OutOrStdout()).Encode(project.NewResult(false, diags))
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: I/O or parse failure: %v (OPE009)\n", origErr)
	}
	return fmt.Errorf("operation failed: %w", origErr)
}

// printDiagnostics writes each diagnostic to stderr in human-readable form.
func printDiagnostics(cmd *cobra.Command, diags []project.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", d.Severity, sanitizePath(d.Message), d.Code)
	}
}
