// Command devcatalyst runs the DevCatalyst site and admin console.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "devcatalyst/docs"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "devcatalyst",
	Short: "DevCatalyst community site and admin console",
	Long: `DevCatalyst serves the community marketing site and the admin console
for events and gallery images. Content lives in the DevCatalyst REST API;
this binary renders it and keeps admin sessions.

Configuration is read from the environment (and .env outside production).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(pruneSessionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
