// Package utils hosts the blob store collaborator.
package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"vidtube/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ===============================
// INTERFACE
// ===============================

// FileStorage is the blob store contract: upload a file, keep only the
// returned reference, delete by public ID.
type FileStorage interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
	ValidateFile(file *multipart.FileHeader, kind AssetKind) error
}

// UploadResult is the stored reference for an uploaded asset.
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Size     int
}

// AssetKind restricts what content an upload slot accepts.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetVideo AssetKind = "video"
)

// Validation and transport errors.
var (
	ErrFileTooLarge       = errors.New("file size exceeds limit")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrUnableToOpenFile   = errors.New("unable to open file")
	ErrUploadFailed       = errors.New("failed to upload file")
	ErrDeleteFailed       = errors.New("failed to delete file")
)

var allowedContentTypes = map[AssetKind][]string{
	AssetImage: {"image/jpeg", "image/png", "image/gif", "image/webp"},
	AssetVideo: {"video/mp4", "video/webm", "application/octet-stream"},
}

// ===============================
// CLOUDINARY SERVICE
// ===============================

// CloudinaryService implements FileStorage against Cloudinary. Uploads are
// retried with exponential backoff; deletes are single-shot since callers
// treat them as best-effort.
type CloudinaryService struct {
	client        *cloudinary.Cloudinary
	config        *config.CloudinaryConfig
	logger        *zap.Logger
	uploadTimeout time.Duration
	deleteTimeout time.Duration
	maxRetries    uint64
}

// NewCloudinaryService builds the collaborator from explicit configuration.
func NewCloudinaryService(cfg *config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryService, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials are missing")
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary: %w", err)
	}

	return &CloudinaryService{
		client:        client,
		config:        cfg,
		logger:        logger,
		uploadTimeout: 2 * time.Minute,
		deleteTimeout: 10 * time.Second,
		maxRetries:    3,
	}, nil
}

// UploadFile pushes the file to the blob store and returns its reference.
func (c *CloudinaryService) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnableToOpenFile, err)
	}
	defer src.Close()

	params := uploader.UploadParams{
		Folder:         c.config.UploadFolder + "/" + folder,
		UseFilename:    ptrBool(true),
		UniqueFilename: ptrBool(true),
		ResourceType:   "auto",
	}

	var result *uploader.UploadResult
	operation := func() error {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		var opErr error
		result, opErr = c.client.Upload.Upload(ctx, src, params)
		if opErr == nil && result != nil && result.Error.Message != "" {
			opErr = errors.New(result.Error.Message)
		}
		return opErr
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	err = backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(policy, c.maxRetries),
		func(err error, d time.Duration) {
			c.logger.Warn("upload attempt failed",
				zap.String("filename", file.Filename),
				zap.Duration("backoff", d),
				zap.Error(err),
			)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	c.logger.Info("file uploaded",
		zap.String("filename", file.Filename),
		zap.String("public_id", result.PublicID),
		zap.Int("bytes", result.Bytes),
	)

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Size:     result.Bytes,
	}, nil
}

// DeleteFile removes an asset by its public ID.
func (c *CloudinaryService) DeleteFile(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.deleteTimeout)
	defer cancel()

	if _, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	c.logger.Info("file deleted", zap.String("public_id", publicID))
	return nil
}

// ValidateFile checks size and sniffed content type before any bytes leave
// the process.
func (c *CloudinaryService) ValidateFile(file *multipart.FileHeader, kind AssetKind) error {
	if file.Size > c.config.MaxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, file.Size, c.config.MaxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnableToOpenFile, err)
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: %v", ErrUnableToOpenFile, err)
	}

	contentType := http.DetectContentType(buffer[:n])
	for _, allowed := range allowedContentTypes[kind] {
		if contentType == allowed {
			return nil
		}
	}

	c.logger.Warn("rejected upload",
		zap.String("filename", file.Filename),
		zap.String("extension", strings.ToLower(filepath.Ext(file.Filename))),
		zap.String("content_type", contentType),
	)
	return fmt.Errorf("%w: %s is not a valid %s type", ErrInvalidContentType, contentType, kind)
}

func ptrBool(b bool) *bool {
	return &b
}
