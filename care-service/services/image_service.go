package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"paddock-backend/shared/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageService stores species images in MinIO
type ImageService struct {
	client     *minio.Client
	bucketName string
}

// NewImageService connects to MinIO and ensures the species bucket exists
func NewImageService() (*ImageService, error) {
	cfg := config.GetConfig()

	// Parse endpoint URL to get host
	parsedURL, err := url.Parse(cfg.MinIOServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MinIO endpoint: %v", err)
	}

	endpoint := parsedURL.Host
	useSSL := cfg.MinIOUseSSL

	log.Printf("🔗 Connecting to MinIO: %s (SSL: %v)", endpoint, useSSL)

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIORootUser, cfg.MinIORootPassword, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	service := &ImageService{
		client:     minioClient,
		bucketName: cfg.MinIOBucketName,
	}

	if err := service.initializeBucket(); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *ImageService) initializeBucket() error {
	ctx := context.Background()

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("✅ MinIO bucket '%s' created successfully", s.bucketName)
	} else {
		log.Printf("✅ MinIO bucket '%s' already exists", s.bucketName)
	}

	return nil
}

// MaxImageSize parses the configured upload limit ("10MB", "512KB") into bytes
func MaxImageSize() int64 {
	raw := strings.ToUpper(strings.TrimSpace(config.GetConfig().SpeciesImageMaxSize))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(raw, "MB"):
		multiplier = 1024 * 1024
		raw = strings.TrimSuffix(raw, "MB")
	case strings.HasSuffix(raw, "KB"):
		multiplier = 1024
		raw = strings.TrimSuffix(raw, "KB")
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 10 * 1024 * 1024
	}
	return value * multiplier
}

// AllowedImageType checks the file extension against the configured list
func AllowedImageType(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range strings.Split(config.GetConfig().SpeciesImageAllowedTypes, ",") {
		if ext == strings.TrimSpace(allowed) {
			return true
		}
	}
	return false
}

// Upload stores an image and returns its object key
func (s *ImageService) Upload(ctx context.Context, orgID, speciesID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectKey := fmt.Sprintf("%s/%s/%d%s",
		orgID, speciesID, time.Now().UTC().UnixNano(), strings.ToLower(filepath.Ext(filename)))

	_, err := s.client.PutObject(ctx, s.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return objectKey, nil
}

// PresignedURL returns a short-lived download URL for an object key
func (s *ImageService) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, objectKey, 15*time.Minute, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign image URL: %w", err)
	}
	return u.String(), nil
}

// Remove deletes an object; missing objects are not an error
func (s *ImageService) Remove(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return nil
	}
	err := s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
