package filestore

//go:generate go run go.uber.org/mock/mockgen -source=./filestore.go -destination=./mocks/filestore_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"mehfil/config"
	"mehfil/infras/otel"
	"mehfil/shared/constant"
	"mehfil/shared/failure"
	"mehfil/shared/timezone"
)

const (
	otelAttrFileName = "file_name"
	otelAttrPath     = "path"
)

var (
	allowedExtensions = []string{".jpeg", ".jpg", ".png", ".gif"}
	allowedMimetypes  = []string{"image/jpeg", "image/png", "image/gif"}
)

// FileStore persists uploaded files on the local disk and exposes them
// under the public uploads prefix.
type FileStore interface {
	Store(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error)
	Remove(ctx context.Context, url string) error
	Dir() string
}

type fileStoreImpl struct {
	dir  string
	otel otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) (FileStore, error) {
	dir := cfg.Uploads.Dir
	if dir == "" {
		dir = "uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	log.Info().Str("dir", dir).Msg("File store initialized")

	return &fileStoreImpl{
		dir:  dir,
		otel: otl,
	}, nil
}

func (f *fileStoreImpl) Dir() string {
	return f.dir
}

func (f *fileStoreImpl) Store(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error) {
	_, scope := f.otel.NewScope(ctx, constant.OtelFilestoreScopeName, constant.OtelFilestoreScopeName+".Store")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFileName, fileHeader.Filename)

	if fileHeader.Size > constant.MaxUploadSizeBytes {
		return constant.Empty, failure.BadRequestFromString("uploaded file exceeds the maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !slices.Contains(allowedExtensions, ext) {
		return constant.Empty, failure.BadRequestFromString("uploaded file type is not allowed")
	}

	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)
	if contentType != constant.Empty && !slices.Contains(allowedMimetypes, contentType) {
		return constant.Empty, failure.BadRequestFromString("uploaded file type is not allowed")
	}

	fileName := fmt.Sprintf("%d-%s", timezone.Now().UnixNano(), sanitizeFileName(fileHeader.Filename))
	dst := filepath.Join(f.dir, fileName)

	out, err := os.Create(dst)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return constant.Empty, fmt.Errorf("failed to write file: %w", err)
	}

	return path.Join(constant.UploadsPublicPrefix, fileName), nil
}

func (f *fileStoreImpl) Remove(ctx context.Context, url string) (err error) {
	_, scope := f.otel.NewScope(ctx, constant.OtelFilestoreScopeName, constant.OtelFilestoreScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrPath, url)

	if !strings.HasPrefix(url, constant.UploadsPublicPrefix) {
		return nil
	}

	fileName := filepath.Base(strings.TrimPrefix(url, constant.UploadsPublicPrefix))
	if fileName == "." || fileName == string(filepath.Separator) {
		return nil
	}

	err = os.Remove(filepath.Join(f.dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("path", url).Msg("File already absent, skipping removal")

			return nil
		}

		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

func sanitizeFileName(name string) string {
	base := filepath.Base(name)

	var b strings.Builder

	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return b.String()
}
