package health

import "context"

// IndexPinger checks search index availability.
type IndexPinger interface {
	Ping(ctx context.Context) error
}

// LabelingChecker checks vision labeling provider availability.
type LabelingChecker interface {
	HealthCheck(ctx context.Context) error
}
