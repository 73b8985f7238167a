package port

import (
	"context"
	"io"
	"time"
)

// ArchiveObject is a generated export written to the archive bucket. Body is
// consumed once and may be a stream of unknown length.
type ArchiveObject struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	// Filename is the name a browser saves the download as.
	Filename string
	Metadata map[string]string
}

// StoredObject identifies an archived export.
type StoredObject struct {
	Location string
	ETag     string
}

// ObjectStorage archives generated exports and hands out time-limited
// download links for them.
type ObjectStorage interface {
	Put(ctx context.Context, obj ArchiveObject) (*StoredObject, error)
	PresignDownload(ctx context.Context, bucket, key, filename string, expiry time.Duration) (string, error)
}
