package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of a load failure.
type ErrorKind int

const (
	// KindUnknown indicates a failure of unknown type.
	KindUnknown ErrorKind = iota
	// KindNetwork indicates a generic network failure (connection reset,
	// timeout, server error).
	KindNetwork
	// KindNetworkConstrained indicates the load was refused because the
	// network is constrained and the request did not allow constrained
	// access. Controllers use this to trigger a low-data fallback.
	KindNetworkConstrained
	// KindDecode indicates the response could not be decoded as an image.
	KindDecode
	// KindCancelled indicates the load was cancelled via its task handle.
	KindCancelled
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNetworkConstrained:
		return "network_constrained"
	case KindDecode:
		return "decode"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// LoadError is a structured load failure reported by a pipeline.
type LoadError struct {
	// URL is the resource whose load failed.
	URL string
	// Kind categorizes the failure.
	Kind ErrorKind
	// Err is the underlying error, if any.
	Err error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s [%s]: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s [%s]", e.URL, e.Kind)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsNetworkConstrained reports whether err is a load failure caused by
// constrained network access.
func IsNetworkConstrained(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == KindNetworkConstrained
}
