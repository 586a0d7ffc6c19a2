package query

import (
	"context"

	"github.com/aperture-cloud/photodex/internal/domain/intent"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	domsearch "github.com/aperture-cloud/photodex/internal/domain/search"
)

// Interpreter resolves an utterance into NLU slots.
type Interpreter interface {
	Interpret(ctx context.Context, utterance string) (intent.Result, error)
}

// Searcher executes boolean keyword queries against the photo index.
type Searcher interface {
	Search(ctx context.Context, q domsearch.Query) ([]domphoto.Photo, error)
}
