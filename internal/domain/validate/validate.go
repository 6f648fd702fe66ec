// Package validate runs advisory invariant and compliance checks over an
// assembled timeline before it is handed to the export collaborator.
package validate

import (
	"fmt"
	"sort"

	"github.com/upstarter/roughcut/internal/types"
)

// Validate inspects the timeline and reports findings. It never mutates its
// input; the CLI layer decides whether findings block the export or merely
// prompt for review.
func Validate(tl types.Timeline) []types.Finding {
	var out []types.Finding

	if tl.Duration <= 0 {
		out = append(out, finding(types.SeverityError, "timeline duration is zero"))
	}

	out = append(out, trackOverlaps(tl)...)
	out = append(out, chapterChecks(tl)...)
	out = append(out, duckChecks(tl)...)
	return out
}

func trackOverlaps(tl types.Timeline) []types.Finding {
	var out []types.Finding
	byTrack := map[types.Track][]types.EditSegment{}
	for _, s := range tl.Segments {
		byTrack[s.Track] = append(byTrack[s.Track], s)
	}
	for track, segs := range byTrack {
		sort.Slice(segs, func(i, j int) bool { return segs[i].DstIn < segs[j].DstIn })
		for i := 1; i < len(segs); i++ {
			if segs[i].DstIn < segs[i-1].DstOut() {
				out = append(out, finding(types.SeverityError,
					"track %s: segments %q and %q overlap at %s",
					track, ref(segs[i-1]), ref(segs[i]), segs[i].DstIn))
			}
		}
	}
	return out
}

func chapterChecks(tl types.Timeline) []types.Finding {
	var out []types.Finding
	for i, ch := range tl.Chapters {
		if ch.Start < 0 || ch.End > tl.Duration {
			out = append(out, finding(types.SeverityError,
				"chapter %d (%q) falls outside the timeline", ch.Index, ch.Title))
		}
		if i > 0 && ch.Start <= tl.Chapters[i-1].Start {
			out = append(out, finding(types.SeverityError,
				"chapter %d (%q) is not strictly after chapter %d",
				ch.Index, ch.Title, tl.Chapters[i-1].Index))
		}
	}
	return out
}

func duckChecks(tl types.Timeline) []types.Finding {
	var out []types.Finding
	for _, s := range tl.Segments {
		for _, d := range s.Ducks {
			if d.From < s.DstIn || d.To > s.DstOut() {
				out = append(out, finding(types.SeverityError,
					"duck window %s-%s falls outside music segment %q", d.From, d.To, ref(s)))
			}
		}
	}
	return out
}

func ref(s types.EditSegment) string {
	if s.ClipID != "" {
		return s.ClipID
	}
	return s.Asset
}

func finding(sev types.Severity, format string, args ...any) types.Finding {
	return types.Finding{Severity: sev, Message: fmt.Sprintf(format, args...)}
}
