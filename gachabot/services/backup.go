package services

import (
	"context"
	"log/slog"
	"os"
	"time"
)

type Snapshotter interface {
	Snapshot(ctx context.Context, dir string, now time.Time) (string, error)
}

type BackupUploader interface {
	UploadBackup(ctx context.Context, localPath string) (string, error)
}

// BackupResult describes where a snapshot ended up. Path is empty once the
// local copy has been uploaded and removed.
type BackupResult struct {
	Path string
	Key  string
}

// RunBackup snapshots the database into dir and, when uploader is set,
// moves the snapshot into object storage.
func RunBackup(ctx context.Context, db Snapshotter, uploader BackupUploader, dir string, now time.Time) (*BackupResult, error) {
	path, err := db.Snapshot(ctx, dir, now)
	if err != nil {
		return nil, err
	}
	if uploader == nil {
		slog.Info("Database snapshot written", slog.String("type", "sys"), slog.String("path", path))
		return &BackupResult{Path: path}, nil
	}

	key, err := uploader.UploadBackup(ctx, path)
	if err != nil {
		return &BackupResult{Path: path}, err
	}
	if err := os.Remove(path); err != nil {
		slog.Warn("Failed to remove local snapshot",
			slog.String("type", "sys"),
			slog.String("path", path),
			slog.Any("error", err))
		return &BackupResult{Path: path, Key: key}, nil
	}

	slog.Info("Database backup uploaded", slog.String("type", "sys"), slog.String("key", key))
	return &BackupResult{Key: key}, nil
}
