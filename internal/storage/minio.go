package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bowerhall/novia/internal/logger"
)

const memoryBucket = "novia-memory"

// Client backs the two JSON documents up to object storage. Entirely
// optional: when MinIO is not configured the rest of the app never
// sees this package.
type Client struct {
	mc *minio.Client
}

// Config holds MinIO connection settings
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func NewClient(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &Client{mc: mc}, nil
}

// Init creates the backup bucket if it doesn't exist
func (c *Client) Init(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, memoryBucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", memoryBucket, err)
	}

	if !exists {
		if err := c.mc.MakeBucket(ctx, memoryBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", memoryBucket, err)
		}
		logger.Info("bucket created", "bucket", memoryBucket)
	}

	return nil
}

// BackupFiles uploads timestamped copies of the given files. A file
// that is missing or fails to upload is logged and skipped; backups
// never interfere with session teardown.
func (c *Client) BackupFiles(ctx context.Context, paths ...string) {
	stamp := time.Now().Format("2006-01-02_15-04-05")

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Debug("backup skipped, file unreadable", "path", path, "error", err)
			continue
		}

		name := fmt.Sprintf("%s/%s", stamp, filepath.Base(path))
		_, err = c.mc.PutObject(ctx, memoryBucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		if err != nil {
			logger.Error("backup upload failed", "path", path, "error", err)
			continue
		}

		logger.Info("backup uploaded", "object", name, "size", len(data))
	}
}

// Healthy checks if MinIO is reachable
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.mc.BucketExists(ctx, memoryBucket)
	return err == nil
}
