// Package media stores evidence and banner images in an object store and
// hands back a public URL plus a deletable reference.
package media

import (
	"context"
	"fmt"
	"strings"

	"clubhub/internal/apperrors"
)

// Upload is an image accepted from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Stored identifies an uploaded image: URL for rendering, Ref for deletion.
type Stored struct {
	URL string `json:"url"`
	Ref string `json:"ref"`
}

type Store interface {
	Put(ctx context.Context, folder string, upload Upload) (Stored, error)
	Delete(ctx context.Context, ref string) error
}

// ValidateImage rejects non-image uploads and files over maxSize bytes
// before anything leaves the process.
func ValidateImage(upload Upload, maxSize int64) error {
	if len(upload.Data) == 0 {
		return apperrors.New(apperrors.CodeValidation, "image is required")
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("unsupported content type %q, only images are allowed", upload.ContentType))
	}
	if int64(len(upload.Data)) > maxSize {
		return apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("image exceeds the %d byte limit", maxSize))
	}
	return nil
}
