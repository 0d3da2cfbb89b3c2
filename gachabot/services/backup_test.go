package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeSnapshotter struct {
	err error
}

func (f fakeSnapshotter) Snapshot(_ context.Context, dir string, now time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(dir, "bot_"+now.Format("20060102_150405")+".db")
	return path, os.WriteFile(path, []byte("sqlite"), 0o600)
}

type fakeUploader struct {
	uploaded []string
	err      error
}

func (f *fakeUploader) UploadBackup(_ context.Context, localPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, localPath)
	return "backups/" + filepath.Base(localPath), nil
}

func TestRunBackup(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	uploadErr := errors.New("bucket unreachable")

	tests := []struct {
		name      string
		snapErr   error
		uploader  *fakeUploader
		wantKey   string
		wantLocal bool
		wantErr   bool
	}{
		{name: "local only", wantLocal: true},
		{name: "uploaded and removed", uploader: &fakeUploader{}, wantKey: "backups/bot_20240309_140506.db"},
		{name: "upload fails keeps local copy", uploader: &fakeUploader{err: uploadErr}, wantLocal: true, wantErr: true},
		{name: "snapshot fails", snapErr: errors.New("not sqlite"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var uploader BackupUploader
			if tt.uploader != nil {
				uploader = tt.uploader
			}

			got, err := RunBackup(context.Background(), fakeSnapshotter{err: tt.snapErr}, uploader, dir, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunBackup() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.snapErr != nil {
				return
			}

			if got.Key != tt.wantKey {
				t.Errorf("RunBackup() key = %q, want %q", got.Key, tt.wantKey)
			}
			local := filepath.Join(dir, "bot_20240309_140506.db")
			_, statErr := os.Stat(local)
			if exists := statErr == nil; exists != tt.wantLocal {
				t.Errorf("RunBackup() local copy exists = %v, want %v", exists, tt.wantLocal)
			}
			if tt.wantLocal && got.Path != local {
				t.Errorf("RunBackup() path = %q, want %q", got.Path, local)
			}
		})
	}
}
