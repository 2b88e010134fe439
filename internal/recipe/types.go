// Package recipe turns raw video transcript data into ordered cooking steps.
// Everything here is pure computation over request-scoped values; network
// acquisition lives in internal/engine/sources.
package recipe

// Segment is one raw timed caption unit from a transcript source.
// Offsets are always milliseconds after normalization.
type Segment struct {
	OffsetMs   int    `json:"offset"`
	DurationMs int    `json:"duration"`
	Text       string `json:"text"`
}

// StartSeconds returns the segment start rounded down to seconds.
func (s Segment) StartSeconds() int {
	return s.OffsetMs / 1000
}

// EndSeconds returns the segment end rounded down to seconds.
func (s Segment) EndSeconds() int {
	return (s.OffsetMs + s.DurationMs) / 1000
}

// Step is a single extracted recipe step.
type Step struct {
	Timestamp   int    `json:"timestamp"` // seconds from video start
	Time        string `json:"time"`      // M:SS display form
	Instruction string `json:"instruction"`
}

// NewStep builds a Step with its display time filled in.
func NewStep(timestamp int, instruction string) Step {
	return Step{
		Timestamp:   timestamp,
		Time:        FormatTime(timestamp),
		Instruction: instruction,
	}
}

// Result is the outcome of one parse request.
// NeedsDuration signals the caller to obtain the video duration (via the
// embedded player) and retry; it is only set when nothing could be produced
// without one.
type Result struct {
	VideoID       string `json:"videoId"`
	Steps         []Step `json:"steps"`
	Duration      int    `json:"duration"`
	NeedsDuration bool   `json:"needsDuration,omitempty"`
}
