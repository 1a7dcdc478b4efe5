package port

import (
	"context"
	"io"
)

// ImageStore persists product images. Save returns a public URL and an
// opaque key used to delete the image later.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (url, key string, err error)

	Delete(ctx context.Context, key string) error
}
