package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mockforge/internal/export"
	"mockforge/internal/llm"
	"mockforge/internal/studio"
)

var variationsOutDir string

var variationsCmd = &cobra.Command{
	Use:   "variations [prompt]",
	Short: "Stream alternative renderings for a component description",
	Long: `Requests a batch of labeled alternatives for an already-generated
component. Each alternative arrives as soon as the model finishes it.

Example:
  mockforge variations "a pricing card" --out ./alternatives`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVariations,
}

func init() {
	variationsCmd.Flags().StringVar(&variationsOutDir, "out", "", "write alternatives to this directory")
}

func runVariations(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	ctx := cmd.Context()

	client, err := llm.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Streaming alternatives for: %s\n", prompt)

	out, errs := studio.NewVariationStream(client).Generate(ctx, prompt)

	n := 0
	for variation := range out {
		n++
		fmt.Printf("  %-20s (%d bytes)\n", variation.Name, len(variation.HTML))
		if variationsOutDir != "" {
			path := filepath.Join(variationsOutDir, fmt.Sprintf("alt-%d-%s.html", n, slugify(variation.Name)))
			if err := export.WriteDocument(path, variation.HTML); err != nil {
				return err
			}
		}
	}
	if err := <-errs; err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("No well-formed alternatives arrived.")
	}
	return nil
}
