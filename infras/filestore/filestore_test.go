package filestore_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mehfil/config"
	"mehfil/infras/filestore"
	"mehfil/infras/otel/mocks"
	"mehfil/shared/constant"
	"mehfil/shared/failure"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func newUpload(name, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(content)),
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set(constant.RequestHeaderContentType, contentType)
	}

	return memoryFile{bytes.NewReader(content)}, header
}

func newFileStore(t *testing.T) filestore.FileStore {
	t.Helper()

	cfg := &config.Config{}
	cfg.Uploads.Dir = t.TempDir()

	fs, err := filestore.New(cfg, mocks.NewOtel())
	require.NoError(t, err)

	return fs
}

func TestFileStore_Store(t *testing.T) {
	fs := newFileStore(t)

	tests := []struct {
		name        string
		fileName    string
		contentType string
		content     []byte
		size        int64
		wantErr     bool
	}{
		{
			name:        "stores a png upload",
			fileName:    "poster.png",
			contentType: "image/png",
			content:     []byte("png bytes"),
		},
		{
			name:        "stores a jpeg without content type header",
			fileName:    "poster.jpg",
			contentType: "",
			content:     []byte("jpeg bytes"),
		},
		{
			name:        "rejects a disallowed extension",
			fileName:    "script.svg",
			contentType: "image/svg+xml",
			content:     []byte("<svg/>"),
			wantErr:     true,
		},
		{
			name:        "rejects a mismatched content type",
			fileName:    "poster.png",
			contentType: "application/pdf",
			content:     []byte("pdf bytes"),
			wantErr:     true,
		},
		{
			name:        "rejects an oversize upload",
			fileName:    "poster.png",
			contentType: "image/png",
			content:     []byte("tiny"),
			size:        constant.MaxUploadSizeBytes + 1,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, header := newUpload(tt.fileName, tt.contentType, tt.content)
			if tt.size != 0 {
				header.Size = tt.size
			}

			url, err := fs.Store(context.Background(), file, header)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))

				entries, readErr := os.ReadDir(fs.Dir())
				require.NoError(t, readErr)
				for _, entry := range entries {
					assert.NotContains(t, entry.Name(), "script")
				}

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(url, constant.UploadsPublicPrefix))

			stored := filepath.Join(fs.Dir(), strings.TrimPrefix(url, constant.UploadsPublicPrefix))
			data, readErr := os.ReadFile(stored)
			require.NoError(t, readErr)
			assert.Equal(t, tt.content, data)
		})
	}
}

func TestFileStore_StoreSanitizesFileName(t *testing.T) {
	fs := newFileStore(t)

	file, header := newUpload("../../etc passwd.png", "image/png", []byte("png bytes"))

	url, err := fs.Store(context.Background(), file, header)
	require.NoError(t, err)

	assert.NotContains(t, url, "..")
	assert.NotContains(t, url, " ")

	entries, err := os.ReadDir(fs.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileStore_Remove(t *testing.T) {
	fs := newFileStore(t)

	file, header := newUpload("poster.png", "image/png", []byte("png bytes"))
	url, err := fs.Store(context.Background(), file, header)
	require.NoError(t, err)

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name: "removes a stored file",
			url:  url,
		},
		{
			name: "missing file is not an error",
			url:  url,
		},
		{
			name: "external url is left untouched",
			url:  "https://example.com/poster.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.Remove(context.Background(), tt.url)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	entries, err := os.ReadDir(fs.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_NewCreatesDirectory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Uploads.Dir = filepath.Join(t.TempDir(), "nested", "uploads")

	fs, err := filestore.New(cfg, mocks.NewOtel())
	require.NoError(t, err)

	info, err := os.Stat(fs.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
