package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kipngetich-lab/TukoShop-App/config"
	"github.com/kipngetich-lab/TukoShop-App/database/seeders"
	"github.com/kipngetich-lab/TukoShop-App/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// tukoshop db:indexes
var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the uniqueness and lookup indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx) //nolint:errcheck

		if err := database.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Indexes ensured.")
		return nil
	},
}

// tukoshop db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed demo accounts, products and cart data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(ctx) //nolint:errcheck

		return seeders.Run(ctx)
	},
}
