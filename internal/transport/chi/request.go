package chi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// queryRequest is the JSON body shape of POST /api/v1/search.
type queryRequest struct {
	Q string `json:"q"`
}

// eventRecordRequest is one record of a storage event batch. The object key
// is URL-encoded as delivered by the storage notification.
type eventRecordRequest struct {
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Size    int64  `json:"size"`
	Caption string `json:"caption,omitempty"`
}

// eventBatchRequest is the body shape of POST /api/v1/events.
type eventBatchRequest struct {
	Records []eventRecordRequest `json:"records"`
}

// parseUtterance normalizes the accepted query shapes — the "q" query string
// parameter or a JSON body with a "q" field — to a single utterance.
// Returns false when no usable utterance was supplied; a malformed body
// counts as absent, not as an error.
func parseUtterance(r *http.Request) (string, bool) {
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		return q, true
	}

	if r.Body == nil || r.Method == http.MethodGet {
		return "", false
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	if q := strings.TrimSpace(req.Q); q != "" {
		return q, true
	}
	return "", false
}
