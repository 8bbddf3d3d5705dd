package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/config"
	"github.com/shashiranjanraj/tillpoint/database/seeders"
	"github.com/shashiranjanraj/tillpoint/pkg/database"
	"github.com/shashiranjanraj/tillpoint/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

func dbHandle() *gorm.DB { return database.DB }

// tillpoint migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB).Run()
	},
}

// tillpoint migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback()
	},
}

// tillpoint migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// tillpoint seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(database.DB)
	},
}

var reconcileRepairFlag bool

// tillpoint reconcile audits item counters against the ledger.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare item counters against the transaction ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		stock := services.NewStockService(database.DB)
		drifts, err := stock.Reconcile(context.Background(), reconcileRepairFlag)
		if err != nil {
			return err
		}

		if len(drifts) == 0 {
			fmt.Println("All item counters match the ledger.")
			return nil
		}

		fmt.Printf("%d item(s) drifted:\n", len(drifts))
		for _, d := range drifts {
			fmt.Printf("  item %d: counter=%d ledger=%d diff=%+d\n",
				d.ItemID, d.Counter, d.LedgerSum, d.Difference)
		}
		if reconcileRepairFlag {
			fmt.Println("Counters reset to ledger sums.")
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileRepairFlag, "repair", false, "Reset drifted counters to their ledger sums")
}
