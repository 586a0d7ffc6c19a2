package domain

import "errors"

var (
	// ErrPhotoNotFound signals a missing photo document.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrInvalidEvent signals a malformed storage event record.
	ErrInvalidEvent = errors.New("invalid storage event")
	// ErrLabelingFailed signals a vision labeling provider failure.
	ErrLabelingFailed = errors.New("labeling provider error")
	// ErrInterpretFailed signals an NLU service failure. Recoverable: the
	// query pipeline degrades to the raw-utterance fallback.
	ErrInterpretFailed = errors.New("utterance interpretation failed")
	// ErrIndexUnavailable signals that the search index cannot be reached.
	ErrIndexUnavailable = errors.New("search index unavailable")
)
