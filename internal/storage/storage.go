package storage

import (
	"context"
)

// FileStorage keeps the site images (logo, background) shown on the public page.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, filename, folder string) (string, error)

	DeleteFile(ctx context.Context, fileURL string) error
}
