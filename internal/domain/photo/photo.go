// Package photo is the photo document aggregate: the indexed representation
// of one stored image and its public search projection.
package photo

import "fmt"

// Photo is the indexed representation of one image (immutable value object).
// The object key doubles as the index document identifier, so re-indexing the
// same key overwrites the prior document.
type Photo struct {
	bucket    string
	objectKey string
	labels    []string
	caption   string
	createdAt int64 // unix millis; 0 means unknown
}

// New validates and creates a Photo. Labels are deduplicated in first-seen
// order; the object key must be non-empty.
func New(bucket, objectKey string, labels []string, caption string, createdAt int64) (Photo, error) {
	if objectKey == "" {
		return Photo{}, fmt.Errorf("object key is required")
	}
	if bucket == "" {
		return Photo{}, fmt.Errorf("bucket is required")
	}

	return Photo{
		bucket:    bucket,
		objectKey: objectKey,
		labels:    dedupeLabels(labels),
		caption:   caption,
		createdAt: createdAt,
	}, nil
}

// Reconstruct creates a Photo without validation (storage hydration).
func Reconstruct(bucket, objectKey string, labels []string, caption string, createdAt int64) Photo {
	return Photo{bucket: bucket, objectKey: objectKey, labels: labels, caption: caption, createdAt: createdAt}
}

// Bucket returns the storage container identifier.
func (p *Photo) Bucket() string { return p.bucket }

// ObjectKey returns the object identifier, unique within the bucket.
func (p *Photo) ObjectKey() string { return p.objectKey }

// Labels returns the visual labels.
func (p *Photo) Labels() []string { return p.labels }

// Caption returns the free-text caption, if any.
func (p *Photo) Caption() string { return p.caption }

// CreatedAt returns the creation timestamp in unix millis, 0 if unknown.
func (p *Photo) CreatedAt() int64 { return p.createdAt }

func dedupeLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
