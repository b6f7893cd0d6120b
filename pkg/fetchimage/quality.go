package fetchimage

import "fmt"

// Quality identifies which tier of image a controller has loaded.
//
// Within one controller lifetime quality only moves upward: a regular
// image is never replaced by a low-data one without an explicit Reset.
type Quality int

const (
	// QualityNone means no image has been loaded yet.
	// This is the zero value, making it the default for a new [Controller].
	QualityNone Quality = iota
	// QualityLow means the displayed image came from the low-data request.
	QualityLow
	// QualityRegular means the displayed image came from the full request.
	QualityRegular
)

// String returns a human-readable representation of the quality tier.
func (q Quality) String() string {
	switch q {
	case QualityNone:
		return "none"
	case QualityLow:
		return "low"
	case QualityRegular:
		return "regular"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Progress is the byte progress of the current load attempt.
// It resets to the zero value at the start of each attempt and is
// non-decreasing within one attempt. Total is zero when the expected
// size is unknown.
type Progress struct {
	Completed int64
	Total     int64
}
