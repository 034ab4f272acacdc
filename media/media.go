// Package media proxies image storage to the hosted service. There is no
// local persistence and no retry; hosted-service failures surface to the
// caller.
package media

import (
	"context"
	"errors"
	"io"
	"time"
)

const (
	// Folder scopes every upload and listing.
	Folder = "tienda-plantas"
	// MaxFileSize is the per-file upload ceiling.
	MaxFileSize = 10 << 20
	// MaxFiles is the per-request upload ceiling.
	MaxFiles = 10
	// MaxListResults caps the listing page.
	MaxListResults = 30
)

// ErrNotFound reports a destroy against an unknown public id.
var ErrNotFound = errors.New("imagen no encontrada")

type Image struct {
	PublicID  string    `json:"publicId"`
	URL       string    `json:"url"`
	Format    string    `json:"format,omitempty"`
	Size      int64     `json:"size,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service interface {
	Upload(ctx context.Context, file io.Reader, filename string) (Image, error)
	Destroy(ctx context.Context, publicID string) error
	List(ctx context.Context) ([]Image, error)
	Ping(ctx context.Context) error
}
