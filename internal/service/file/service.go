package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FileService interface {
	// ArchiveRoster stores an imported workbook under rosters/<year>-<month>/<importID>.xlsx.
	ArchiveRoster(ctx context.Context, file io.Reader, filename string, importID string, month, year int) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// ArchiveRoster implements FileService.
func (s *fileServiceImpl) ArchiveRoster(ctx context.Context, file io.Reader, filename string, importID string, month, year int) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" {
		return "", fmt.Errorf("invalid file type: only xlsx allowed")
	}

	key := path.Join("rosters", fmt.Sprintf("%04d-%02d", year, month), importID+ext)

	uploadedPath, err := s.storage.Upload(ctx, file, key, xlsxContentType)
	if err != nil {
		return "", fmt.Errorf("failed to archive roster: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file from storage
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL gets URL for a file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
