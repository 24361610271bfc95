// Package storage keeps artist images in MinIO. Song payloads and album
// cover blobs live in the database; only the artwork referenced by URL
// goes to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tunevault/config"
	"tunevault/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	minioClient *minio.Client
	bucket      string
	publicURL   string
)

// InitMinio initializes the MinIO client and ensures the bucket exists.
func InitMinio(cfg *config.Config) error {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created artwork bucket", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	bucket = cfg.MinioBucket
	publicURL = strings.TrimRight(cfg.MinioPublicURL, "/")
	return nil
}

// UploadArtistImage stores an artist image and returns its public URL.
func UploadArtistImage(ctx context.Context, artistID int64, r io.Reader, size int64, contentType string) (string, error) {
	if minioClient == nil {
		return "", fmt.Errorf("object storage not initialized")
	}

	objectName := fmt.Sprintf("artists/%d/%s%s", artistID, uuid.NewString(), extensionFor(contentType))
	_, err := minioClient.PutObject(ctx, bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artist image: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", publicURL, bucket, objectName)
	logger.Info("Artist image uploaded",
		logger.Int64("artistId", artistID), logger.String("object", objectName))
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
