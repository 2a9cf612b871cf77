/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gamely",
	Short: "Client for the Gamely game catalog",
	Long: `Client for the Gamely game catalog backend.

Run the web frontend with "gamely server", or use the catalog and account
subcommands directly from the terminal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
