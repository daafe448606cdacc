package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mockforge/internal/config"
	"mockforge/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	modelFlag  string

	// Loaded configuration, available to all subcommands.
	cfg *config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "mockforge",
	Short: "mockforge - streaming multi-variant UI generation",
	Long: `mockforge turns a natural-language component description into several
independently generated visual variants, streamed live as the model types.

Each prompt opens a session: style directions are resolved first, then all
variants generate concurrently. Finished artifacts can be kept in the vault
and exported as standalone HTML documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if modelFlag != "" {
			cfg.Model = modelFlag
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Init(level, cfg.Logging.JSON); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override the generation model")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(variationsCmd)
	rootCmd.AddCommand(vaultCmd)
	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
