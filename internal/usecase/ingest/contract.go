package ingest

import (
	"context"

	"github.com/aperture-cloud/photodex/internal/domain/label"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
)

// Labeler detects visual labels for a stored image.
type Labeler interface {
	DetectLabels(ctx context.Context, bucket, objectKey string, maxLabels int, minConfidence float64) ([]label.Label, error)
}

// Writer persists photo documents into the search index.
type Writer interface {
	Upsert(ctx context.Context, p *domphoto.Photo) error
}
