package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tensuraworld/gachabot/gachabot/services"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the sqlite database and upload it to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		var uploader services.BackupUploader
		if cfg.Spaces.Enabled() {
			spaces, err := services.NewSpacesService(ctx, cfg.Spaces)
			if err != nil {
				return err
			}
			uploader = spaces
		}

		dir := cfg.DB.BackupDir
		if backupDir != "" {
			dir = backupDir
		}
		result, err := services.RunBackup(ctx, db, uploader, dir, time.Now())
		if err != nil {
			return err
		}

		if result.Key != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result.Key)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), result.Path)
		}
		return nil
	},
}

var listBackupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List snapshots stored in object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfigOnly()
		if err != nil {
			return err
		}
		if !cfg.Spaces.Enabled() {
			return fmt.Errorf("object storage is not configured")
		}
		spaces, err := services.NewSpacesService(ctx, cfg.Spaces)
		if err != nil {
			return err
		}

		backups, err := spaces.ListBackups(ctx)
		if err != nil {
			return err
		}
		for _, b := range backups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", b.Key, b.Size, b.Modified.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "", "local directory for the snapshot (defaults to db.backup_dir)")
	rootCmd.AddCommand(backupCmd, listBackupsCmd)
}
