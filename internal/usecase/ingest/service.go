// Package ingest processes storage-creation events: each record is labeled,
// normalized, and upserted into the photo index independently of its
// siblings.
package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aperture-cloud/photodex/internal/domain/event"
	"github.com/aperture-cloud/photodex/internal/domain/label"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	"github.com/aperture-cloud/photodex/internal/logger"
	"github.com/aperture-cloud/photodex/internal/metrics"
)

// Default labeling parameters.
const (
	DefaultMaxLabels     = 10
	DefaultMinConfidence = 75.0
)

// Service handles storage event batches with per-record error reporting.
type Service struct {
	labeler       Labeler
	photos        Writer
	maxLabels     int
	minConfidence float64
	now           func() time.Time
}

// New creates an ingest service.
func New(labeler Labeler, photos Writer) *Service {
	return &Service{
		labeler:       labeler,
		photos:        photos,
		maxLabels:     DefaultMaxLabels,
		minConfidence: DefaultMinConfidence,
		now:           time.Now,
	}
}

// WithMaxLabels configures the label count requested per image.
func (s *Service) WithMaxLabels(n int) *Service {
	if n > 0 {
		s.maxLabels = n
	}
	return s
}

// WithMinConfidence configures the confidence threshold in percent.
func (s *Service) WithMinConfidence(pct float64) *Service {
	if pct > 0 {
		s.minConfidence = pct
	}
	return s
}

// Process handles one storage event batch. Every record is processed to
// completion regardless of its siblings' outcomes; the returned slice is
// positional with the input.
func (s *Service) Process(ctx context.Context, records []event.Record) []event.Result {
	results := make([]event.Result, len(records))
	for i, rec := range records {
		results[i] = s.processRecord(ctx, rec)
	}
	return results
}

func (s *Service) processRecord(ctx context.Context, rec event.Record) event.Result {
	log := logger.FromContext(ctx).With(
		zap.String("bucket", rec.Bucket()),
		zap.String("object_key", rec.ObjectKey()),
	)

	if rec.IsEmpty() {
		metrics.ObjectsSkippedTotal.WithLabelValues("empty").Inc()
		log.Info("skipping zero-byte object")
		return event.NewSkipped(rec.ObjectKey())
	}

	raw, err := s.labeler.DetectLabels(ctx, rec.Bucket(), rec.ObjectKey(), s.maxLabels, s.minConfidence)
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("labeling").Inc()
		log.Error("labeling failed", zap.Error(err))
		return event.NewError(rec.ObjectKey(), fmt.Errorf("label %s/%s: %w", rec.Bucket(), rec.ObjectKey(), err))
	}

	names := label.Normalize(raw, s.minConfidence)

	p, err := domphoto.New(rec.Bucket(), rec.ObjectKey(), names, rec.Caption(), s.now().UnixMilli())
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("validate").Inc()
		return event.NewError(rec.ObjectKey(), fmt.Errorf("build photo %s/%s: %w", rec.Bucket(), rec.ObjectKey(), err))
	}

	if err := s.photos.Upsert(ctx, &p); err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("index").Inc()
		log.Error("index upsert failed", zap.Error(err))
		return event.NewError(rec.ObjectKey(), fmt.Errorf("upsert %s/%s: %w", rec.Bucket(), rec.ObjectKey(), err))
	}

	metrics.PhotosIndexedTotal.Inc()
	log.Info("photo indexed", zap.Int("labels", len(names)))
	return event.NewOK(rec.ObjectKey())
}
