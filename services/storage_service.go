package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// ObjectStorage is the boundary the product service talks to for media
// uploads. Backed by Alibaba OSS in production, by a stub in tests.
type ObjectStorage interface {
	UploadImage(ctx context.Context, objectName string, r io.Reader) (string, error)
	PublicURL(objectName string) string
}

// StorageService stores product media in an OSS bucket.
type StorageService struct {
	logger *gecho.Logger
	cfg    *structs.StorageConfig
	bucket *oss.Bucket
}

func NewStorageService(logger *gecho.Logger, cfg *structs.Config) (*StorageService, error) {
	client, err := oss.New(cfg.Storage.Endpoint, cfg.Storage.AccessKeyID, cfg.Storage.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open oss bucket %q: %w", cfg.Storage.Bucket, err)
	}

	return &StorageService{
		logger: logger,
		cfg:    cfg.Storage,
		bucket: bucket,
	}, nil
}

// UploadImage stores the payload under objectName and returns its public URL.
func (ss *StorageService) UploadImage(ctx context.Context, objectName string, r io.Reader) (string, error) {
	if err := ss.bucket.PutObject(objectName, r, oss.WithContext(ctx)); err != nil {
		ss.logger.Error("Failed to upload object to storage",
			gecho.Field("error", err),
			gecho.Field("object", objectName),
		)
		return "", err
	}

	url := ss.PublicURL(objectName)
	ss.logger.Debug("Object uploaded to storage",
		gecho.Field("object", objectName),
		gecho.Field("url", url),
	)
	return url, nil
}

// PublicURL resolves the public address of a stored object.
func (ss *StorageService) PublicURL(objectName string) string {
	if ss.cfg.PublicBaseURL != "" {
		return strings.TrimRight(ss.cfg.PublicBaseURL, "/") + "/" + objectName
	}
	return fmt.Sprintf("https://%s.%s/%s", ss.cfg.Bucket, ss.cfg.Endpoint, objectName)
}

// ProductImageObjectName builds a collision-free bucket path for a product
// cover image, preserving the original file extension.
func ProductImageObjectName(activityID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("products/%s/cover-%s%s", activityID, uuid.New().String()[:8], ext)
}

var vimeoIDPattern = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)

// ExtractVimeoID pulls the numeric video identifier out of a Vimeo URL.
// Returns "" when the URL is not a recognizable Vimeo link.
func ExtractVimeoID(videoURL string) string {
	matches := vimeoIDPattern.FindStringSubmatch(videoURL)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}
