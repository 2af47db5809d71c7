package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/frahmantamala/task-management/internal"
)

// StoredFile is what the rest of the system keeps about an upload: the
// original name, the public URL and the provider id needed to address it
// later. The bytes themselves live only at the provider.
type StoredFile struct {
	FileName string
	URL      string
	PublicID string
}

// Uploader pushes a file to the object-storage provider.
type Uploader interface {
	Upload(ctx context.Context, fileName string, contents io.Reader) (*StoredFile, error)
}

// CloudinaryUploader stores attachments in Cloudinary, mirroring the
// upload pipeline the frontend already expects URLs from.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
	logger *slog.Logger
}

func NewCloudinaryUploader(cfg internal.StorageConfig, logger *slog.Logger) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "gestor-tareas"
	}

	return &CloudinaryUploader{
		client: client,
		folder: folder,
		logger: logger,
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, fileName string, contents io.Reader) (*StoredFile, error) {
	publicID := uuid.NewString()
	if ext := filepath.Ext(fileName); ext != "" {
		publicID = publicID + "-" + strings.TrimPrefix(ext, ".")
	}

	resp, err := u.client.Upload.Upload(ctx, contents, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: publicID,
	})
	if err != nil {
		u.logger.Error("cloudinary upload failed", "error", err, "file_name", fileName)
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	u.logger.Info("file uploaded",
		"file_name", fileName,
		"public_id", resp.PublicID,
		"bytes", resp.Bytes)

	return &StoredFile{
		FileName: fileName,
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}
