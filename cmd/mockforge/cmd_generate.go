package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mockforge/internal/export"
	"mockforge/internal/llm"
	"mockforge/internal/studio"
	"mockforge/internal/vault"
)

var (
	generateOutDir string
	generateSave   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate UI variants for a component description",
	Long: `Opens a generation session for the prompt: style directions are resolved,
then all variants stream concurrently. Progress is printed per artifact as
bytes arrive.

Example:
  mockforge generate "a pricing card" --out ./variants`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOutDir, "out", "", "write finished variants to this directory")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "keep finished variants in the vault")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	ctx := cmd.Context()

	client, err := llm.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	state := studio.NewState()
	coordinator := studio.NewCoordinator(client, state, cfg.FanOut)

	// Render streaming progress while the batch runs.
	snapshots, unsubscribe := state.Subscribe()
	var render sync.WaitGroup
	render.Add(1)
	go func() {
		defer render.Done()
		printed := make(map[string]studio.ArtifactStatus)
		for snap := range snapshots {
			for _, s := range snap.Sessions {
				for _, a := range s.Artifacts {
					if printed[a.ID] == a.Status {
						continue
					}
					printed[a.ID] = a.Status
					switch a.Status {
					case studio.StatusStreaming:
						fmt.Printf("  %-20s streaming...\n", a.StyleName)
					case studio.StatusComplete:
						fmt.Printf("  %-20s complete (%d bytes)\n", a.StyleName, len(a.HTML))
					case studio.StatusError:
						fmt.Printf("  %-20s failed\n", a.StyleName)
					}
				}
			}
		}
	}()

	fmt.Printf("Generating %d variants for: %s\n", cfg.FanOut, prompt)
	sessionID, err := coordinator.Generate(ctx, prompt)
	unsubscribe()
	render.Wait()
	if err != nil {
		return err
	}

	session, err := state.SessionByID(sessionID)
	if err != nil {
		return err
	}

	return deliverArtifacts(session)
}

// deliverArtifacts writes or saves the completed artifacts per flags.
func deliverArtifacts(session studio.Session) error {
	var v *vault.Vault
	if generateSave {
		var err error
		v, err = vault.Open(cfg.VaultPath)
		if err != nil {
			return err
		}
		defer v.Close()
	}

	for i, a := range session.Artifacts {
		if a.Status != studio.StatusComplete {
			continue
		}
		if generateOutDir != "" {
			path := filepath.Join(generateOutDir, fmt.Sprintf("variant-%d-%s.html", i+1, slugify(a.StyleName)))
			if err := export.WriteDocument(path, a.HTML); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
		}
		if v != nil {
			if err := v.Save(studio.NewSavedArtifact(a, session.Prompt)); err != nil {
				return err
			}
			fmt.Printf("Saved %s (%s) to vault\n", a.ID, a.StyleName)
		}
	}
	return nil
}

// slugify turns a style label into a filename fragment.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
