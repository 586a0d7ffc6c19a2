package event

// ItemStatus is the processing outcome of a single event record.
type ItemStatus string

// Record status values.
const (
	StatusOK      ItemStatus = "ok"
	StatusSkipped ItemStatus = "skipped"
	StatusError   ItemStatus = "error"
)

// Result is the outcome of processing one record in a storage event batch.
type Result struct {
	objectKey string
	status    ItemStatus
	err       error
}

// NewOK creates a successful record result.
func NewOK(objectKey string) Result { return Result{objectKey: objectKey, status: StatusOK} }

// NewSkipped creates a result for a record skipped before labeling.
func NewSkipped(objectKey string) Result { return Result{objectKey: objectKey, status: StatusSkipped} }

// NewError creates a failed record result.
func NewError(objectKey string, err error) Result {
	return Result{objectKey: objectKey, status: StatusError, err: err}
}

// ObjectKey returns the record identifier.
func (r Result) ObjectKey() string { return r.objectKey }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
