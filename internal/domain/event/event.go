// Package event models inbound storage-creation notifications and the
// per-record processing outcome reported back to the sender.
package event

import (
	"fmt"
	"net/url"

	"github.com/aperture-cloud/photodex/internal/domain"
)

// Record is one object-created notification. Object keys arrive URL-encoded
// (spaces as "+", percent escapes) and are stored decoded.
type Record struct {
	bucket    string
	objectKey string
	size      int64
	caption   string
}

// NewRecord validates and creates a Record, decoding the URL-encoded object
// key. A malformed or empty key yields domain.ErrInvalidEvent.
func NewRecord(bucket, rawKey string, size int64, caption string) (Record, error) {
	if bucket == "" {
		return Record{}, fmt.Errorf("bucket is required: %w", domain.ErrInvalidEvent)
	}
	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return Record{}, fmt.Errorf("decode object key %q: %w: %w", rawKey, domain.ErrInvalidEvent, err)
	}
	if key == "" {
		return Record{}, fmt.Errorf("object key is required: %w", domain.ErrInvalidEvent)
	}

	return Record{bucket: bucket, objectKey: key, size: size, caption: caption}, nil
}

// Bucket returns the storage container identifier.
func (r Record) Bucket() string { return r.bucket }

// ObjectKey returns the decoded object identifier.
func (r Record) ObjectKey() string { return r.objectKey }

// Size returns the object size in bytes.
func (r Record) Size() int64 { return r.size }

// Caption returns the optional free-text caption.
func (r Record) Caption() string { return r.caption }

// IsEmpty reports whether the object has no content. Empty objects are
// skipped before labeling.
func (r Record) IsEmpty() bool { return r.size == 0 }
