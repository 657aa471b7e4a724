package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "phuler",
	Short: "Phuler storefront CLI",
	Long:  "Catalog import, validation and maintenance commands for the Phuler storefront.",
}

// Execute applies registered commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
