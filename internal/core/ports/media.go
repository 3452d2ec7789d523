package ports

import (
	"context"
	"io"
)

// TextDetector extracts printed text from an image.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// ImageStore persists uploaded images by name.
type ImageStore interface {
	Save(name string, r io.Reader) (string, error)
	Open(name string) (io.ReadCloser, error)
}
