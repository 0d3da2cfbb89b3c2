package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tensuraworld/gachabot/gachabot/logger"
)

var withSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}
		if withSeed {
			if err := db.SeedStarterData(ctx); err != nil {
				return err
			}
		}

		logger.LogSystem("Migration completed", slog.String("driver", db.Driver()))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert starter characters and quests into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}
		return db.SeedStarterData(ctx)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&withSeed, "seed", false, "also seed starter data")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
