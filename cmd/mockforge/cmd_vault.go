package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mockforge/internal/vault"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage artifacts kept beyond their session",
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := vault.Open(cfg.VaultPath)
		if err != nil {
			return err
		}
		defer v.Close()

		records, err := v.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("Vault is empty.")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s  %-20s  %s  %q\n",
				rec.ID, rec.StyleName, rec.SavedAt.Format("2006-01-02 15:04"), rec.Prompt)
		}
		return nil
	},
}

var vaultRemoveCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a saved artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := vault.Open(cfg.VaultPath)
		if err != nil {
			return err
		}
		defer v.Close()

		if err := v.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	vaultCmd.AddCommand(vaultListCmd)
	vaultCmd.AddCommand(vaultRemoveCmd)
}
