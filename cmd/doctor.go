package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/audit"
	"github.com/stormlightlabs/inkwell/internal/doc"
)

// NewDoctorCmd creates the doctor subcommand using os.Getwd for the working directory.
func NewDoctorCmd(io FileReader) *cobra.Command {
	return newDoctorCmdWithGetCWD(io, os.Getwd)
}

// newDoctorCmdWithGetCWD creates the doctor subcommand with an injectable getwd function.
func newDoctorCmdWithGetCWD(io FileReader, getwd func() (string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "doctor",
		Short:        "Validate project structural integrity",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode, _ := cmd.Flags().GetBool("json")

			dir, err := resolveProjectDir(cmd, getwd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx, io, dir)
			if err != nil {
				return err
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
				return fmt.Errorf("cannot read project: %w", err)
			}

			var diags []audit.AuditDiagnostic
			p, err := doc.DecodeProject(bytes.NewReader(raw))
			if err != nil {
				diags = []audit.AuditDiagnostic{audit.DecodeFailure(err)}
			} else {
				diags = audit.Run(p)
			}
			log.Debug().Str("path", path).Int("findings", len(diags)).Msg("audit complete")

			if jsonMode {
				if diags == nil {
					diags = []audit.AuditDiagnostic{}
				}
				_ = json.NewEncoder(cmd.OutOrStdout()).Encode(diags)
			} else {
				for _, d := range diags {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n",
						string(d.Code),
						string(d.Severity),
						sanitizePath(d.Message),
						sanitizePath(d.Path),
					)
				}
			}

			if audit.HasError(diags) {
				return fmt.Errorf("project has integrity errors")
			}
			return nil
		},
	}

	cmd.Flags().String("project", "", "project directory to audit (default: current directory)")
	cmd.Flags().Bool("json", false, "output diagnostics as JSON array")

	return cmd
}
