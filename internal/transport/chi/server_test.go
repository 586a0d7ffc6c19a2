package chi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/aperture-cloud/photodex/internal/domain"
	"github.com/aperture-cloud/photodex/internal/domain/intent"
	"github.com/aperture-cloud/photodex/internal/domain/label"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
)

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func postJSON(t *testing.T, url string, body string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func TestSearchPhotos_QueryParam(t *testing.T) {
	f := newFixture("https://cdn.example.com/{bucket}/{key}")
	defer f.close()

	f.nlu.result = intent.NewResult(map[string]intent.Slot{
		"keywords": intent.NewValues([]string{"dog", "cat"}),
	})
	f.idx.photos = []domphoto.Photo{
		domphoto.Reconstruct("uploads", "dog.jpg", []string{"dog", "pet"}, "", 1700000000000),
	}

	var resp searchResponse
	getJSON(t, f.server.URL+"/api/v1/search?q="+url.QueryEscape("show me dogs and cats"),
		http.StatusOK, &resp)

	if resp.Query == nil || *resp.Query != "show me dogs and cats" {
		t.Errorf("query = %v", resp.Query)
	}
	if strings.Join(resp.Keywords, ",") != "dog,cat" {
		t.Errorf("keywords = %v", resp.Keywords)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}

	item := resp.Results[0]
	if item.ObjectKey != "dog.jpg" || item.Bucket != "uploads" {
		t.Errorf("result = %+v", item)
	}
	if item.CreatedTimestamp == nil || *item.CreatedTimestamp != 1700000000000 {
		t.Errorf("createdTimestamp = %v", item.CreatedTimestamp)
	}
	if item.URL == nil || *item.URL != "https://cdn.example.com/uploads/dog.jpg" {
		t.Errorf("url = %v", item.URL)
	}
}

func TestSearchPhotos_JSONBody(t *testing.T) {
	f := newFixture("")
	defer f.close()

	f.nlu.result = intent.NewResult(map[string]intent.Slot{
		"keywords": intent.NewValue("dog"),
	})

	var resp searchResponse
	postJSON(t, f.server.URL+"/api/v1/search", `{"q": "dog"}`, http.StatusOK, &resp)

	if resp.Query == nil || *resp.Query != "dog" {
		t.Errorf("query = %v", resp.Query)
	}
	if len(resp.Keywords) != 1 || resp.Keywords[0] != "dog" {
		t.Errorf("keywords = %v", resp.Keywords)
	}
	if resp.Results == nil {
		t.Error("results must be a JSON array, not null")
	}
}

func TestSearchPhotos_NoURLWithoutTemplate(t *testing.T) {
	f := newFixture("")
	defer f.close()

	f.nlu.result = intent.NewResult(map[string]intent.Slot{
		"keywords": intent.NewValue("dog"),
	})
	f.idx.photos = []domphoto.Photo{
		domphoto.Reconstruct("uploads", "dog.jpg", []string{"dog"}, "", 0),
	}

	var resp searchResponse
	getJSON(t, f.server.URL+"/api/v1/search?q=dog", http.StatusOK, &resp)

	item := resp.Results[0]
	if item.URL != nil {
		t.Errorf("url = %q, want absent", *item.URL)
	}
	if item.CreatedTimestamp != nil {
		t.Errorf("createdTimestamp = %v, want absent", *item.CreatedTimestamp)
	}
}

func TestSearchPhotos_MissingUtterance(t *testing.T) {
	f := newFixture("")
	defer f.close()

	tests := []struct {
		name string
		do   func(t *testing.T) searchResponse
	}{
		{"no query param", func(t *testing.T) searchResponse {
			var resp searchResponse
			getJSON(t, f.server.URL+"/api/v1/search", http.StatusOK, &resp)
			return resp
		}},
		{"blank query param", func(t *testing.T) searchResponse {
			var resp searchResponse
			getJSON(t, f.server.URL+"/api/v1/search?q=%20%20", http.StatusOK, &resp)
			return resp
		}},
		{"empty body field", func(t *testing.T) searchResponse {
			var resp searchResponse
			postJSON(t, f.server.URL+"/api/v1/search", `{"q": ""}`, http.StatusOK, &resp)
			return resp
		}},
		{"malformed body", func(t *testing.T) searchResponse {
			var resp searchResponse
			postJSON(t, f.server.URL+"/api/v1/search", `{not json`, http.StatusOK, &resp)
			return resp
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := tc.do(t)
			if resp.Query != nil {
				t.Errorf("query = %q, want null", *resp.Query)
			}
			if len(resp.Keywords) != 0 || len(resp.Results) != 0 {
				t.Errorf("keywords = %v, results = %v, want empty", resp.Keywords, resp.Results)
			}
		})
	}

	if f.idx.calls != 0 {
		t.Errorf("searcher called %d times for empty utterances", f.idx.calls)
	}
}

func TestSearchPhotos_NLUFailureFallsBack(t *testing.T) {
	f := newFixture("")
	defer f.close()

	f.nlu.err = domain.ErrInterpretFailed

	var resp searchResponse
	postJSON(t, f.server.URL+"/api/v1/search", `{"q": "show me dog and cat"}`, http.StatusOK, &resp)

	want := []string{"show me dog", "cat"}
	if len(resp.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", resp.Keywords, want)
	}
	for i := range want {
		if resp.Keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, resp.Keywords[i], want[i])
		}
	}
}

func TestSearchPhotos_IndexFailure(t *testing.T) {
	f := newFixture("")
	defer f.close()

	f.nlu.result = intent.NewResult(map[string]intent.Slot{
		"keywords": intent.NewValue("dog"),
	})
	f.idx.err = domain.ErrIndexUnavailable

	var resp errorResponse
	getJSON(t, f.server.URL+"/api/v1/search?q=dog", http.StatusServiceUnavailable, &resp)

	if resp.Code != codeIndexUnavailable {
		t.Errorf("code = %q, want %q", resp.Code, codeIndexUnavailable)
	}
}

func TestIngestEvents_Batch(t *testing.T) {
	f := newFixture("")
	defer f.close()

	f.labeler.labels = []label.Label{label.New("Dog", 98)}

	body := `{"records": [
		{"bucket": "uploads", "key": "summer+trip%2Fdog.jpg", "size": 2048},
		{"bucket": "uploads", "key": "empty.jpg", "size": 0},
		{"bucket": "", "key": "lost+found%2Forphan.jpg", "size": 10}
	]}`

	var resp eventBatchResponse
	postJSON(t, f.server.URL+"/api/v1/events", body, http.StatusOK, &resp)

	if resp.Succeeded != 1 || resp.Skipped != 1 || resp.Failed != 1 {
		t.Fatalf("succeeded=%d skipped=%d failed=%d", resp.Succeeded, resp.Skipped, resp.Failed)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(resp.Items))
	}

	if resp.Items[0].Status != "ok" || resp.Items[0].ObjectKey != "summer trip/dog.jpg" {
		t.Errorf("items[0] = %+v", resp.Items[0])
	}
	if resp.Items[1].Status != "skipped" {
		t.Errorf("items[1] = %+v", resp.Items[1])
	}
	if resp.Items[2].Status != "error" || resp.Items[2].Error == "" {
		t.Errorf("items[2] = %+v", resp.Items[2])
	}
	// Invalid records report the decoded key, same as processed ones.
	if resp.Items[2].ObjectKey != "lost found/orphan.jpg" {
		t.Errorf("items[2].ObjectKey = %q, want %q", resp.Items[2].ObjectKey, "lost found/orphan.jpg")
	}

	if len(f.writer.upserted) != 1 {
		t.Fatalf("got %d upserts, want 1", len(f.writer.upserted))
	}
	if got := f.writer.upserted[0].ObjectKey(); got != "summer trip/dog.jpg" {
		t.Errorf("upserted key = %q", got)
	}
}

func TestIngestEvents_BadRequest(t *testing.T) {
	f := newFixture("")
	defer f.close()

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{not json`},
		{"no records", `{"records": []}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			postJSON(t, f.server.URL+"/api/v1/events", tc.body, http.StatusBadRequest, nil)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	f := newFixture("")
	defer f.close()

	var resp healthResponse
	getJSON(t, f.server.URL+"/health", http.StatusOK, &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Checks["index"] != "ok" {
		t.Errorf("checks = %v", resp.Checks)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	f := newFixture("")
	defer f.close()

	f.ping.err = domain.ErrIndexUnavailable

	var resp healthResponse
	getJSON(t, f.server.URL+"/health", http.StatusServiceUnavailable, &resp)
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
}
