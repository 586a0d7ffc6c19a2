package redis

import (
	"strings"
	"testing"

	"github.com/aperture-cloud/photodex/internal/db"
	"github.com/aperture-cloud/photodex/internal/domain/search"
)

func TestBuildBooleanQuery_AnyMode(t *testing.T) {
	q := &db.Query{
		IndexName: "photodex:photos:idx",
		Keywords:  []string{"dog", "cat"},
		Mode:      search.MatchAny,
		TagFields: []string{"labels"},
	}

	got, err := buildBooleanQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "(@labels:{dog} | @labels:{cat})"
	if got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
}

func TestBuildBooleanQuery_AllMode(t *testing.T) {
	q := &db.Query{
		IndexName: "photodex:photos:idx",
		Keywords:  []string{"dog", "cat"},
		Mode:      search.MatchAll,
		TagFields: []string{"labels"},
	}

	got, err := buildBooleanQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "@labels:{dog} @labels:{cat}"
	if got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
}

func TestBuildBooleanQuery_MultiField(t *testing.T) {
	q := &db.Query{
		IndexName:  "photodex:photos:idx",
		Keywords:   []string{"dog", "cat"},
		Mode:       search.MatchAll,
		TagFields:  []string{"labels"},
		TextFields: []string{"caption"},
	}

	got, err := buildBooleanQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "(@labels:{dog} | @caption:(dog)) (@labels:{cat} | @caption:(cat))"
	if got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
}

func TestBuildBooleanQuery_SingleKeywordAnyNoParens(t *testing.T) {
	q := &db.Query{
		IndexName: "idx",
		Keywords:  []string{"sunset"},
		Mode:      search.MatchAny,
		TagFields: []string{"labels"},
	}

	got, err := buildBooleanQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "@labels:{sunset}" {
		t.Errorf("query = %q", got)
	}
}

func TestBuildBooleanQuery_EscapesKeywords(t *testing.T) {
	q := &db.Query{
		IndexName: "idx",
		Keywords:  []string{"golden retriever"},
		Mode:      search.MatchAny,
		TagFields: []string{"labels"},
	}

	got, err := buildBooleanQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `golden\ retriever`) {
		t.Errorf("query = %q, want escaped space", got)
	}
}

func TestBuildBooleanQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		q    *db.Query
	}{
		{"missing index", &db.Query{Keywords: []string{"dog"}, TagFields: []string{"labels"}}},
		{"no keywords", &db.Query{IndexName: "idx", TagFields: []string{"labels"}}},
		{"no fields", &db.Query{IndexName: "idx", Keywords: []string{"dog"}}},
		{"bad mode", &db.Query{IndexName: "idx", Keywords: []string{"dog"}, TagFields: []string{"labels"}, Mode: "xor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildBooleanQuery(tt.q); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBuildCreateArgs(t *testing.T) {
	def, err := db.NewIndex("photodex:photos:idx").
		Prefix("photodex:photos:").
		TagWithOpts("labels", ",", false).
		Text("caption").
		Numeric("created_at").
		Build()
	if err != nil {
		t.Fatalf("build def: %v", err)
	}

	args, err := buildCreateArgs(def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"photodex:photos:idx", "ON", "HASH",
		"PREFIX", "1", "photodex:photos:",
		"SCHEMA",
		"labels", "TAG", "SEPARATOR", ",",
		"caption", "TEXT",
		"created_at", "NUMERIC",
	}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}
