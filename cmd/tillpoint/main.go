package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations and jobs so their init() funcs register themselves.
	_ "github.com/shashiranjanraj/tillpoint/app/jobs"
	_ "github.com/shashiranjanraj/tillpoint/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tillpoint",
	Short: "Tillpoint point-of-sale and inventory server",
	Long:  "Tillpoint runs the register API: catalog, stock ledger, sales, and the admin surface.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reconcileCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)
}
