package types

import "fmt"

// Diagnostic is one skipped, rejected, or flagged item, always with enough
// context for a human reviewer to recover manually.
type Diagnostic struct {
	ClipID string `json:"clip_id"`
	Reason string `json:"reason"`
}

// Notice signals a feature that ran with reduced input (degraded mode). It is
// information, not an error.
type Notice struct {
	Component string `json:"component"`
	Message   string `json:"message"`
}

// Diagnostics is the structured report accompanying every run. Nothing the
// pipeline drops or degrades is omitted from it.
type Diagnostics struct {
	Skipped       []Diagnostic `json:"skipped,omitempty"`
	Rejected      []Diagnostic `json:"rejected,omitempty"`
	LowConfidence []Diagnostic `json:"low_confidence,omitempty"`
	UnplacedBRoll []Diagnostic `json:"unplaced_broll,omitempty"`
	Notices       []Notice     `json:"notices,omitempty"`
	Findings      []Finding    `json:"findings,omitempty"`
}

func (d *Diagnostics) Skip(clipID, format string, args ...any) {
	d.Skipped = append(d.Skipped, Diagnostic{ClipID: clipID, Reason: fmt.Sprintf(format, args...)})
}

func (d *Diagnostics) Reject(clipID, format string, args ...any) {
	d.Rejected = append(d.Rejected, Diagnostic{ClipID: clipID, Reason: fmt.Sprintf(format, args...)})
}

func (d *Diagnostics) Notice(component, format string, args ...any) {
	d.Notices = append(d.Notices, Notice{Component: component, Message: fmt.Sprintf(format, args...)})
}

// Empty reports whether the run produced no diagnostics at all.
func (d Diagnostics) Empty() bool {
	return len(d.Skipped) == 0 && len(d.Rejected) == 0 && len(d.LowConfidence) == 0 &&
		len(d.UnplacedBRoll) == 0 && len(d.Notices) == 0 && len(d.Findings) == 0
}
