package chi

import (
	"github.com/aperture-cloud/photodex/internal/domain/event"
	domphoto "github.com/aperture-cloud/photodex/internal/domain/photo"
	queryuc "github.com/aperture-cloud/photodex/internal/usecase/query"
)

// searchResultItem is the public projection of one matched photo. Optional
// fields are omitted rather than defaulted.
type searchResultItem struct {
	ObjectKey        string   `json:"objectKey"`
	Bucket           string   `json:"bucket"`
	Labels           []string `json:"labels"`
	CreatedTimestamp *int64   `json:"createdTimestamp,omitempty"`
	URL              *string  `json:"url,omitempty"`
}

// searchResponse is the query pipeline response contract.
type searchResponse struct {
	Query    *string            `json:"query"`
	Keywords []string           `json:"keywords"`
	Results  []searchResultItem `json:"results"`
}

// eventResultItem is the per-record outcome of an ingested storage event.
type eventResultItem struct {
	ObjectKey string `json:"objectKey"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// eventBatchResponse summarizes one processed storage event batch.
type eventBatchResponse struct {
	Items     []eventResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func emptySearchResponse() searchResponse {
	return searchResponse{Keywords: []string{}, Results: []searchResultItem{}}
}

func assembleSearchResponse(utterance string, res queryuc.Result, urlTemplate string) searchResponse {
	resp := searchResponse{
		Query:    &utterance,
		Keywords: res.Keywords(),
		Results:  make([]searchResultItem, 0, len(res.Photos())),
	}
	if resp.Keywords == nil {
		resp.Keywords = []string{}
	}

	for _, p := range res.Photos() {
		resp.Results = append(resp.Results, assembleResult(p, urlTemplate))
	}
	return resp
}

func assembleResult(p domphoto.Photo, urlTemplate string) searchResultItem {
	item := searchResultItem{
		ObjectKey: p.ObjectKey(),
		Bucket:    p.Bucket(),
		Labels:    p.Labels(),
	}
	if item.Labels == nil {
		item.Labels = []string{}
	}

	if ts := p.CreatedAt(); ts > 0 {
		item.CreatedTimestamp = &ts
	}

	if u := domphoto.ObjectURL(urlTemplate, p.Bucket(), p.ObjectKey()); u != "" {
		item.URL = &u
	}

	return item
}

func assembleEventResponse(results []event.Result) eventBatchResponse {
	resp := eventBatchResponse{Items: make([]eventResultItem, len(results))}
	for i, res := range results {
		item := eventResultItem{
			ObjectKey: res.ObjectKey(),
			Status:    string(res.Status()),
		}
		switch res.Status() {
		case event.StatusOK:
			resp.Succeeded++
		case event.StatusSkipped:
			resp.Skipped++
		case event.StatusError:
			resp.Failed++
			item.Error = safeDomainMessage(res.Err())
		}
		resp.Items[i] = item
	}
	return resp
}
