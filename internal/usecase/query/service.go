// Package query orchestrates the retrieval pipeline: utterance
// interpretation, keyword extraction with raw-text fallback, and the boolean
// index search.
package query

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aperture-cloud/photodex/internal/domain/intent"
	"github.com/aperture-cloud/photodex/internal/domain/keyword"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	domsearch "github.com/aperture-cloud/photodex/internal/domain/search"
	"github.com/aperture-cloud/photodex/internal/logger"
	"github.com/aperture-cloud/photodex/internal/metrics"
)

// Result is the outcome of one query pipeline run.
type Result struct {
	keywords keyword.Set
	photos   []domphoto.Photo
}

// Keywords returns the normalized keywords the search ran with.
func (r Result) Keywords() []string { return r.keywords.Keywords() }

// Photos returns the matched photos, empty when no searchable terms existed.
func (r Result) Photos() []domphoto.Photo { return r.photos }

// Service handles free-text photo queries.
type Service struct {
	nlu    Interpreter
	photos Searcher
	mode   domsearch.Mode
}

// New creates a query service.
func New(nlu Interpreter, photos Searcher) *Service {
	return &Service{nlu: nlu, photos: photos, mode: domsearch.MatchAny}
}

// WithMatchMode configures ALL vs ANY keyword matching.
func (s *Service) WithMatchMode(mode domsearch.Mode) *Service {
	if mode != "" {
		s.mode = mode
	}
	return s
}

// Search resolves the utterance into keywords and runs the index query.
// An NLU failure degrades to extracting keywords from the raw utterance; an
// empty keyword set returns an empty result without touching the index. An
// index failure is fatal for the request.
func (s *Service) Search(ctx context.Context, utterance string) (Result, error) {
	log := logger.FromContext(ctx)

	res, err := s.nlu.Interpret(ctx, utterance)
	if err != nil {
		metrics.NLUFallbacksTotal.Inc()
		log.Warn("utterance interpretation failed, using raw utterance",
			zap.String("utterance", utterance), zap.Error(err))
		res = intent.Result{}
	}

	set := keyword.Extract(res, utterance)
	if set.IsEmpty() {
		log.Info("no searchable terms", zap.String("utterance", utterance))
		return Result{keywords: set}, nil
	}

	q := domsearch.NewQuery(set, s.mode)

	photos, err := s.photos.Search(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("search %v: %w", set.Keywords(), err)
	}
	metrics.SearchesTotal.WithLabelValues(string(s.mode)).Inc()

	log.Info("query executed",
		zap.Strings("keywords", set.Keywords()),
		zap.String("mode", string(s.mode)),
		zap.Int("hits", len(photos)))

	return Result{keywords: set, photos: photos}, nil
}
