package db

import "github.com/aperture-cloud/photodex/internal/domain/search"

// Query is the input for a boolean keyword search over an FT index. Each
// keyword is matched against every listed field; the match mode decides how
// per-keyword clauses combine (all = intersection, any = union).
type Query struct {
	IndexName    string
	Keywords     []string
	Mode         search.Mode
	TagFields    []string
	TextFields   []string
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
