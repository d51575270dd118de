package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/doc"
)

// NewNewDocumentCmd creates the new-document subcommand.
func NewNewDocumentCmd(ids doc.IDSource) *cobra.Command {
	var (
		heading string
		text    []string
	)

	cmd := &cobra.Command{
		Use:          "new-document",
		Short:        "Print a new empty document as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := doc.NewDocument(ids)
			root := d.RootNode()
			if heading != "" {
				h := doc.NewNode(ids)
				h.Type = doc.HeadingType(doc.Level1)
				h.AppendText(heading, doc.TextFormat{Size: 24, Strong: true})
				root.AppendChild(h)
			}
			for _, para := range text {
				p := doc.NewNode(ids)
				p.AppendText(para, doc.TextFormat{Size: 12})
				root.AppendChild(p)
			}
			if err := doc.Encode(cmd.OutOrStdout(), d); err != nil {
				return fmt.Errorf("encoding document: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&heading, "heading", "", "add a level 1 heading with this text")
	cmd.Flags().StringArrayVar(&text, "text", nil, "add a paragraph with this text (repeatable)")

	return cmd
}
