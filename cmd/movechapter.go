package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// NewMoveChapterCmd creates the move-chapter subcommand.
func NewMoveChapterCmd(io ChapterIO) *cobra.Command {
	return newMoveChapterCmdWithGetCWD(io, os.Getwd)
}

func newMoveChapterCmdWithGetCWD(io ChapterIO, getwd func() (string, error)) *cobra.Command {
	var (
		num      uint8
		first    bool
		at       int
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:          "move-chapter",
		Short:        "Move a chapter to a new position in the project",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := project.MoveParams{Num: num, Position: project.PositionLast}
			if first {
				params.Position = project.PositionFirst
			}
			if cmd.Flags().Changed("at") {
				params.At = &at
			}
			op := func(ctx context.Context, p doc.Project) (doc.Project, []project.Diagnostic) {
				return project.MoveChapter(ctx, p, params)
			}
			return runChapterOp(cmd, io, getwd, jsonMode, op, func(out doc.Project) string {
				for i, c := range out.Books {
					if c.Num == num {
						return fmt.Sprintf("Moved chapter %d to index %d", num, i)
					}
				}
				return fmt.Sprintf("Moved chapter %d", num)
			})
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().Uint8Var(&num, "num", 0, "number of the chapter to move")
	cmd.Flags().BoolVar(&first, "first", false, "move to the first position")
	cmd.Flags().IntVar(&at, "at", 0, "zero-based destination index")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output result as JSON")
	_ = cmd.MarkFlagRequired("num")

	return cmd
}
