package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mockforge/internal/export"
	"mockforge/internal/vault"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [artifact-id]",
	Short: "Export a saved artifact as an HTML document or zip bundle",
	Long: `Writes a vault artifact's HTML to disk. A .zip destination produces a
bundle containing index.html; anything else is written as a standalone
document.

Example:
  mockforge export 3f2a... --out card.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := vault.Open(cfg.VaultPath)
		if err != nil {
			return err
		}
		defer v.Close()

		rec, err := v.Get(args[0])
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = slugify(rec.StyleName) + ".html"
		}

		if strings.HasSuffix(out, ".zip") {
			err = export.WriteBundle(out, rec.HTML)
		} else {
			err = export.WriteDocument(out, rec.HTML)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported %s to %s\n", rec.ID, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "destination path (.html or .zip)")
}
