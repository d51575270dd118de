package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/doc"
)

// parseKinds maps --kind values to a decoder producing a value ready for doc.Encode.
var parseKinds = map[string]func(data []byte) (any, error){
	"project": func(data []byte) (any, error) {
		return doc.DecodeProject(bytes.NewReader(data))
	},
	"document": func(data []byte) (any, error) {
		return doc.DecodeDocument(bytes.NewReader(data))
	},
	"character": func(data []byte) (any, error) {
		var c doc.Character
		err := json.Unmarshal(data, &c)
		return c, err
	},
	"setting": func(data []byte) (any, error) {
		var s doc.Setting
		err := json.Unmarshal(data, &s)
		return s, err
	},
}

// NewParseCmd creates the parse subcommand.
func NewParseCmd(reader FileReader) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:          "parse <file>",
		Short:        "Decode a project or document file and print its canonical JSON",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			decode, ok := parseKinds[kind]
			if !ok {
				return fmt.Errorf("--kind must be one of project, document, character, setting; got %q", kind)
			}

			data, err := reader.ReadFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			v, err := decode(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			if err := doc.Encode(cmd.OutOrStdout(), v); err != nil {
				return fmt.Errorf("encoding output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "project", "file kind: project, document, character or setting")

	return cmd
}
