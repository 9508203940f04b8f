package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"chunkgate/internal/config"
	"chunkgate/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	core := minio.Core{Client: client}
	return &Adapter{client: client, core: &core, config: cfg, logger: logger}, nil
}

// InitMultipartUpload opens a multipart upload for a storage key
func (a *Adapter) InitMultipartUpload(ctx context.Context, storageKey string) (string, error) {
	uploadID, err := a.core.NewMultipartUpload(ctx, a.config.BucketName, storageKey, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload: %w", err)
	}
	return uploadID, nil
}

// PutObjectPart uploads one part of an in-flight multipart upload
func (a *Adapter) PutObjectPart(ctx context.Context, storageKey, uploadID string, partNumber int, data io.Reader, size int64) (port.StoragePart, error) {
	part, err := a.core.PutObjectPart(ctx, a.config.BucketName, storageKey, uploadID, partNumber, data, size, minio.PutObjectPartOptions{})
	if err != nil {
		return port.StoragePart{}, fmt.Errorf("failed to put part %d: %w", partNumber, err)
	}

	return port.StoragePart{
		PartNumber: part.PartNumber,
		ETag:       strings.Trim(part.ETag, "\""),
		Size:       part.Size,
	}, nil
}

// CompleteMultipartUpload marks the minio multipart as complete
func (a *Adapter) CompleteMultipartUpload(ctx context.Context, storageKey string, uploadID string, parts []port.StoragePart) error {
	completeParts := make([]minio.CompletePart, 0, len(parts))
	for _, part := range parts {
		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       strings.Trim(part.ETag, "\""),
		})
	}

	_, err := a.core.CompleteMultipartUpload(ctx, a.config.BucketName, storageKey, uploadID, completeParts, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	return nil
}

// AbortMultipartUpload releases an in-flight multipart upload
func (a *Adapter) AbortMultipartUpload(ctx context.Context, storageKey string, uploadID string) error {
	err := a.core.AbortMultipartUpload(ctx, a.config.BucketName, storageKey, uploadID)
	if err != nil {
		return fmt.Errorf("failed to abort multipart upload: %w", err)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("storageKey", storageKey),
		slog.String("uploadID", uploadID))

	return nil
}

// ListParts lists all parts uploaded so far for an in-flight multipart upload
func (a *Adapter) ListParts(ctx context.Context, storageKey string, uploadID string) ([]port.StoragePart, error) {
	var parts []port.StoragePart
	marker := 0
	for {
		result, err := a.core.ListObjectParts(ctx, a.config.BucketName, storageKey, uploadID, marker, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to list parts: %w", err)
		}

		for _, part := range result.ObjectParts {
			parts = append(parts, port.StoragePart{
				PartNumber: part.PartNumber,
				ETag:       strings.Trim(part.ETag, "\""),
				Size:       part.Size,
			})
		}

		if !result.IsTruncated {
			break
		}
		marker = result.NextPartNumberMarker
	}

	return parts, nil
}

// StatObject retrieves size and etag of a finalized object
func (a *Adapter) StatObject(ctx context.Context, storageKey string) (*port.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, storageKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	return &port.ObjectInfo{
		Size: info.Size,
		ETag: strings.Trim(info.ETag, "\""),
	}, nil
}

// GetObject retrieves an object's bytes
func (a *Adapter) GetObject(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, storageKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, nil
}
