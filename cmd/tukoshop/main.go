package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tukoshop",
	Short: "TukoShop marketplace CLI",
	Long:  "TukoShop is a marketplace backend. Use this CLI to run the server and manage the database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(dbIndexesCmd)
	rootCmd.AddCommand(dbSeedCmd)

	// Accounts
	rootCmd.AddCommand(adminCreateCmd)
}
