package search

import (
	"reflect"
	"testing"

	"github.com/aperture-cloud/photodex/internal/domain/keyword"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", MatchAny, false},
		{"any", MatchAny, false},
		{"all", MatchAll, false},
		{"or", "", true},
		{"ALL", "", true},
	}

	for _, tt := range tests {
		t.Run("mode_"+tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewQuery(t *testing.T) {
	set := keyword.FromPhrase("dog and cat")

	q := NewQuery(set, MatchAll)
	if q.Mode() != MatchAll {
		t.Errorf("Mode() = %q", q.Mode())
	}
	if want := []string{"dog", "cat"}; !reflect.DeepEqual(q.Keywords(), want) {
		t.Errorf("Keywords() = %v, want %v", q.Keywords(), want)
	}
	if q.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
}

func TestNewQueryDefaultsToAny(t *testing.T) {
	q := NewQuery(keyword.FromPhrase("dog"), "")
	if q.Mode() != MatchAny {
		t.Errorf("Mode() = %q, want %q", q.Mode(), MatchAny)
	}
}

func TestEmptyQuery(t *testing.T) {
	q := NewQuery(keyword.Set{}, MatchAny)
	if !q.IsEmpty() {
		t.Error("IsEmpty() = false for empty keyword set")
	}
}
