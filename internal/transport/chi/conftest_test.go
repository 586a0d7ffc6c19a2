package chi

import (
	"context"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aperture-cloud/photodex/internal/domain/intent"
	"github.com/aperture-cloud/photodex/internal/domain/label"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	domsearch "github.com/aperture-cloud/photodex/internal/domain/search"
	healthuc "github.com/aperture-cloud/photodex/internal/usecase/health"
	ingestuc "github.com/aperture-cloud/photodex/internal/usecase/ingest"
	queryuc "github.com/aperture-cloud/photodex/internal/usecase/query"
)

// --- Mocks ---

type mockLabeler struct {
	labels []label.Label
	err    error
	calls  int
}

func (m *mockLabeler) DetectLabels(_ context.Context, _, _ string, _ int, _ float64) ([]label.Label, error) {
	m.calls++
	return m.labels, m.err
}

type mockWriter struct {
	err      error
	upserted []domphoto.Photo
}

func (m *mockWriter) Upsert(_ context.Context, p *domphoto.Photo) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, *p)
	return nil
}

type mockInterpreter struct {
	result intent.Result
	err    error
}

func (m *mockInterpreter) Interpret(_ context.Context, _ string) (intent.Result, error) {
	return m.result, m.err
}

type mockSearcher struct {
	photos []domphoto.Photo
	err    error
	calls  int
}

func (m *mockSearcher) Search(_ context.Context, _ domsearch.Query) ([]domphoto.Photo, error) {
	m.calls++
	return m.photos, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Fixture ---

type fixture struct {
	labeler *mockLabeler
	writer  *mockWriter
	nlu     *mockInterpreter
	idx     *mockSearcher
	ping    *mockPinger
	server  *httptest.Server
}

func newFixture(urlTemplate string) *fixture {
	f := &fixture{
		labeler: &mockLabeler{},
		writer:  &mockWriter{},
		nlu:     &mockInterpreter{},
		idx:     &mockSearcher{},
		ping:    &mockPinger{},
	}

	srv := NewServer(
		ingestuc.New(f.labeler, f.writer),
		queryuc.New(f.nlu, f.idx),
		healthuc.New(f.ping, nil),
		urlTemplate,
		zap.NewNop(),
	)

	r := chi.NewRouter()
	srv.Routes(r)
	f.server = httptest.NewServer(r)
	return f
}

func (f *fixture) close() { f.server.Close() }
