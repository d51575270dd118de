package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/config"
	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// InitIO handles I/O for the init command.
type InitIO interface {
	StatFile(path string) (bool, error)
	WriteFileAtomic(ctx context.Context, path string, data []byte) error
}

// NewInitCmd creates the init subcommand.
func NewInitCmd(io InitIO) *cobra.Command {
	return newInitCmdWithGetCWD(io, os.Getwd)
}

func newInitCmdWithGetCWD(io InitIO, getwd func() (string, error)) *cobra.Command {
	var (
		force bool
		name  string
	)

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize an inkwell project in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveProjectDir(cmd, getwd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if name == "" {
				name = filepath.Base(dir)
			}
			if err := project.ValidateFieldValue(name); err != nil {
				return fmt.Errorf("--name must not contain control characters")
			}

			cfg := config.Default()
			projectPath := cfg.ProjectPath(dir)
			configPath := filepath.Join(dir, config.FileName)

			projectExists, err := io.StatFile(projectPath)
			if err != nil {
				return fmt.Errorf("checking %s: %w", projectPath, err)
			}
			if projectExists && !force {
				return fmt.Errorf("%s already exists in %s; use --force to overwrite", cfg.Project, dir)
			}

			needsWarning := force && projectExists

			projectBytes, err := encodeProject(doc.Project{Name: name})
			if err != nil {
				return err
			}
			if err := io.WriteFileAtomic(ctx, projectPath, projectBytes); err != nil {
				return fmt.Errorf("writing %s: %w", cfg.Project, err)
			}

			configExists, err := io.StatFile(configPath)
			if err != nil {
				return fmt.Errorf("checking %s: %w", configPath, err)
			}

			needsWarning = needsWarning || (force && configExists)

			if !configExists || force {
				configBytes, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				if err := io.WriteFileAtomic(ctx, configPath, configBytes); err != nil {
					return fmt.Errorf(
						"writing %s (partial init; re-run with --force to recover): %w", config.FileName, err)
				}
			}

			if needsWarning {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: overwriting existing files")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Initialized "+dir)
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory (default: current directory)")
	cmd.Flags().StringVar(&name, "name", "", "project name (default: directory name)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}
