package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type SpacesConfig struct {
	Key        string `toml:"key" env:"SPACES_KEY"`
	Secret     string `toml:"secret" env:"SPACES_SECRET"`
	Region     string `toml:"region"`
	Bucket     string `toml:"bucket"`
	Endpoint   string `toml:"endpoint"`
	ArtRoot    string `toml:"art_root"`
	BackupRoot string `toml:"backup_root"`
}

// Enabled reports whether enough is configured to talk to the bucket.
func (c SpacesConfig) Enabled() bool {
	return c.Key != "" && c.Secret != "" && c.Bucket != ""
}

// Backup is one stored database snapshot.
type Backup struct {
	Key      string
	Size     int64
	Modified time.Time
}

// SpacesService stores character art and database snapshots in an
// S3-compatible bucket.
type SpacesService struct {
	client     *s3.Client
	bucket     string
	endpoint   string
	artRoot    string
	backupRoot string
}

func NewSpacesService(ctx context.Context, cfg SpacesConfig) (*SpacesService, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region)
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load spaces config: %w", err)
	}

	artRoot := strings.Trim(cfg.ArtRoot, "/")
	if artRoot == "" {
		artRoot = "characters"
	}
	backupRoot := strings.Trim(cfg.BackupRoot, "/")
	if backupRoot == "" {
		backupRoot = "backups"
	}

	return &SpacesService{
		client:     s3.NewFromConfig(awsCfg),
		bucket:     cfg.Bucket,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		artRoot:    artRoot,
		backupRoot: backupRoot,
	}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// ArtKey is the object key for a character's art.
func ArtKey(root, name, ext string) string {
	slug := strings.Trim(unsafeKeyChars.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		slug = "character"
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "png"
	}
	return path.Join(root, slug+"."+ext)
}

// UploadArt stores image data for the named character and returns its
// public URL.
func (s *SpacesService) UploadArt(ctx context.Context, name, ext, contentType string, data []byte) (string, error) {
	key := ArtKey(s.artRoot, name, ext)
	if contentType == "" {
		contentType = "image/png"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload art: %w", err)
	}
	return s.URL(key), nil
}

// UploadBackup copies a local snapshot file into the backup prefix and
// returns the object key.
func (s *SpacesService) UploadBackup(ctx context.Context, localPath string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot: %w", err)
	}

	key := path.Join(s.backupRoot, filepath.Base(localPath))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/vnd.sqlite3"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}
	return key, nil
}

// ListBackups returns stored snapshots, newest first.
func (s *SpacesService) ListBackups(ctx context.Context) ([]Backup, error) {
	var backups []Backup
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.backupRoot + "/"),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			b := Backup{Key: *obj.Key, Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				b.Modified = *obj.LastModified
			}
			backups = append(backups, b)
		}
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Key > backups[j].Key
	})
	return backups, nil
}

func (s *SpacesService) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}
