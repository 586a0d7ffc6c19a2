// Package photo persists photo documents in the search index: hash per photo
// keyed by object key, with an FT index over labels, caption, and timestamp.
package photo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aperture-cloud/photodex/internal/db"
	"github.com/aperture-cloud/photodex/internal/domain"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	domsearch "github.com/aperture-cloud/photodex/internal/domain/search"
)

// DefaultSearchLimit bounds result counts when the caller does not set one.
const DefaultSearchLimit = 50

// store is the consumer interface for photo persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
}

// Repo implements the ingest writer and query reader contracts.
type Repo struct {
	store       store
	searchLimit int
}

// New creates a photo repository.
func New(s store) *Repo {
	return &Repo{store: s, searchLimit: DefaultSearchLimit}
}

// WithSearchLimit overrides the maximum number of search hits returned.
func (r *Repo) WithSearchLimit(limit int) *Repo {
	if limit > 0 {
		r.searchLimit = limit
	}
	return r
}

// EnsureIndex creates the photo FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, domain.PhotoIndexName)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(domain.PhotoIndexName).
		Prefix(domain.PhotoKeyPrefix).
		TagWithOpts(fieldLabels, labelSeparator, false).
		Text(fieldCaption).
		Numeric(fieldCreatedAt).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert writes or overwrites exactly one document keyed by object key.
// Calling it repeatedly with the same key is safe; the last write wins.
func (r *Repo) Upsert(ctx context.Context, p *domphoto.Photo) error {
	key := photoKey(p.ObjectKey())
	if err := r.store.HSet(ctx, key, buildFields(p)); err != nil {
		return fmt.Errorf("upsert %s: %w: %w", key, domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Get returns a photo document by object key.
func (r *Repo) Get(ctx context.Context, objectKey string) (domphoto.Photo, error) {
	key := photoKey(objectKey)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return domphoto.Photo{}, fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domphoto.Photo{}, domain.ErrPhotoNotFound
	}

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domphoto.Photo{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return parsePhoto(objectKey, fields), nil
}

// Search executes a boolean keyword query and returns matching photos.
// Callers must not pass an empty query; that is their short-circuit to handle.
func (r *Repo) Search(ctx context.Context, q domsearch.Query) ([]domphoto.Photo, error) {
	if q.IsEmpty() {
		return nil, fmt.Errorf("empty query must be short-circuited by the caller")
	}

	dbq := &db.Query{
		IndexName:    domain.PhotoIndexName,
		Keywords:     q.Keywords(),
		Mode:         q.Mode(),
		TagFields:    []string{fieldLabels},
		TextFields:   []string{fieldCaption},
		Limit:        r.searchLimit,
		ReturnFields: []string{fieldBucket, fieldLabels, fieldCaption, fieldCreatedAt},
	}

	sr, err := r.store.Search(ctx, dbq)
	if err != nil {
		return nil, fmt.Errorf("search photos: %w: %w", domain.ErrIndexUnavailable, err)
	}

	return parseSearchResult(sr), nil
}
