package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline metrics for the ingestion and query paths.
var (
	// PhotosIndexedTotal counts successful photo index upserts.
	PhotosIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "photos_indexed_total",
			Help:      "Total number of photo documents written to the index",
		},
	)

	// ObjectsSkippedTotal counts storage objects skipped before labeling.
	ObjectsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "objects_skipped_total",
			Help:      "Total number of storage objects skipped by the ingest pipeline",
		},
		[]string{"reason"},
	)

	// IngestErrorsTotal counts per-item ingest failures by stage.
	IngestErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "ingest_errors_total",
			Help:      "Total number of per-item ingest failures",
		},
		[]string{"stage"},
	)

	// LabelingRequestsTotal counts vision labeling calls by outcome.
	LabelingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "labeling_requests_total",
			Help:      "Total number of vision labeling requests",
		},
		[]string{"provider", "status"},
	)

	// LabelingRequestDuration tracks vision labeling latency.
	LabelingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "photodex",
			Name:      "labeling_request_duration_seconds",
			Help:      "Vision labeling request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// NLUFallbacksTotal counts queries that degraded to the raw-utterance path.
	NLUFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "nlu_fallbacks_total",
			Help:      "Total number of queries that fell back to the raw utterance",
		},
	)

	// SearchesTotal counts executed index searches by match mode.
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "searches_total",
			Help:      "Total number of executed photo searches",
		},
		[]string{"mode"},
	)
)

// RegisterPipelineMetrics registers pipeline metrics explicitly (no init()).
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		PhotosIndexedTotal,
		ObjectsSkippedTotal,
		IngestErrorsTotal,
		LabelingRequestsTotal,
		LabelingRequestDuration,
		NLUFallbacksTotal,
		SearchesTotal,
	)
}
