// Package pipeline defines the contract between fetch controllers and the
// external image loading service.
//
// A Pipeline resolves a [Request] to a decoded image, including whatever
// caching, network transport, and decoding it performs internally. The
// controller never sees any of that; it only probes the cache synchronously
// and drives asynchronous loads through the returned [Task] handle.
package pipeline

import "image"

// Priority controls scheduling of a load relative to other in-flight loads.
type Priority int

const (
	// PriorityVeryLow is the lowest scheduling priority.
	PriorityVeryLow Priority = iota - 2
	// PriorityLow schedules below normal work.
	PriorityLow
	// PriorityNormal is the default priority.
	// This is the zero value, making it the default for [Request].
	PriorityNormal
	// PriorityHigh schedules above normal work.
	PriorityHigh
	// PriorityVeryHigh is the highest scheduling priority.
	PriorityVeryHigh
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityVeryLow:
		return "very_low"
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityVeryHigh:
		return "very_high"
	default:
		return "normal"
	}
}

// Request is an immutable description of an image resource plus fetch
// options. The zero Priority is PriorityNormal.
type Request struct {
	// URL locates the image resource.
	URL string
	// Priority is the declared scheduling priority for the load.
	Priority Priority
	// AllowConstrainedNetwork permits the load to proceed over a network
	// the platform reports as constrained (for example, Low Data Mode).
	// Loads without it fail with KindNetworkConstrained on such networks.
	AllowConstrainedNetwork bool
}

// NewRequest creates a request for the given URL with default options.
func NewRequest(url string) Request {
	return Request{URL: url}
}

// ProgressUpdate reports load progress for one in-flight load.
// Completed and Total are byte counts; Total may be zero when the expected
// size is unknown. Partial, when non-nil, is a partially decoded image
// produced by progressive decoding.
type ProgressUpdate struct {
	Completed int64
	Total     int64
	Partial   image.Image
}

// Task is a handle to one in-flight asynchronous load.
//
// Cancel stops the load; the pipeline may still invoke callbacks that were
// already in flight, so callers that need post-cancel silence must gate
// their callbacks themselves. Priority can be adjusted at any time while
// the load is running.
type Task interface {
	Cancel()
	Priority() Priority
	SetPriority(priority Priority)
}

// Pipeline is the external image loading service.
//
// Implementations must be safe for concurrent use by many independent
// controllers. For a single load, zero or more progress callbacks are
// delivered before exactly one completion callback.
type Pipeline interface {
	// CachedImage returns the decoded image cached for the request, or nil.
	// It must be synchronous and non-blocking.
	CachedImage(request Request) image.Image

	// LoadImage starts an asynchronous load and returns its task handle.
	// onProgress may be nil. onCompletion receives either a decoded image
	// or a non-nil error, never both.
	LoadImage(request Request, onProgress func(ProgressUpdate), onCompletion func(image.Image, error)) Task
}
