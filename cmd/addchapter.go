package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// NewAddChapterCmd creates the add-chapter subcommand.
func NewAddChapterCmd(io ChapterIO, ids doc.IDSource) *cobra.Command {
	return newAddChapterCmdWithGetCWD(io, ids, os.Getwd)
}

func newAddChapterCmdWithGetCWD(io ChapterIO, ids doc.IDSource, getwd func() (string, error)) *cobra.Command {
	var (
		title    string
		num      uint8
		first    bool
		at       int
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:          "add-chapter",
		Short:        "Add a chapter with an empty document to the project",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := project.AddParams{Position: project.PositionLast}
			if first {
				params.Position = project.PositionFirst
			}
			if cmd.Flags().Changed("title") {
				params.Title = &title
			}
			if cmd.Flags().Changed("num") {
				params.Num = &num
			}
			if cmd.Flags().Changed("at") {
				params.At = &at
			}

			var added uint8
			op := func(ctx context.Context, p doc.Project) (doc.Project, []project.Diagnostic) {
				out, diags := project.AddChapter(ctx, p, ids, params)
				if len(out.Books) > len(p.Books) {
					added = newChapterNum(p, out)
				}
				return out, diags
			}
			return runChapterOp(cmd, io, getwd, jsonMode, op, func(out doc.Project) string {
				return fmt.Sprintf("Added chapter %d", added)
			})
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().StringVar(&title, "title", "", "chapter title (omit for an untitled chapter)")
	cmd.Flags().Uint8Var(&num, "num", 0, "chapter number (default: one past the highest)")
	cmd.Flags().BoolVar(&first, "first", false, "insert as the first chapter")
	cmd.Flags().IntVar(&at, "at", 0, "zero-based insertion index")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output result as JSON")

	return cmd
}

// newChapterNum returns the number of the chapter present in after but not before.
func newChapterNum(before, after doc.Project) uint8 {
	seen := make(map[uint8]bool, len(before.Books))
	for _, c := range before.Books {
		seen[c.Num] = true
	}
	for _, c := range after.Books {
		if !seen[c.Num] {
			return c.Num
		}
	}
	return 0
}
