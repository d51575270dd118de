package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// NewDeleteChapterCmd creates the delete-chapter subcommand.
func NewDeleteChapterCmd(io ChapterIO) *cobra.Command {
	return newDeleteChapterCmdWithGetCWD(io, os.Getwd)
}

func newDeleteChapterCmdWithGetCWD(io ChapterIO, getwd func() (string, error)) *cobra.Command {
	var (
		num      uint8
		yes      bool
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:          "delete-chapter",
		Short:        "Delete a chapter and its document from the project",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := project.DeleteParams{Num: num, Yes: yes}
			op := func(ctx context.Context, p doc.Project) (doc.Project, []project.Diagnostic) {
				return project.DeleteChapter(ctx, p, params)
			}
			return runChapterOp(cmd, io, getwd, jsonMode, op, func(doc.Project) string {
				return fmt.Sprintf("Deleted chapter %d", num)
			})
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().Uint8Var(&num, "num", 0, "number of the chapter to delete")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output result as JSON")
	_ = cmd.MarkFlagRequired("num")

	return cmd
}
