package assemble

import (
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

// cut is one surviving A-roll sub-range. clipSrc is clip-local, globalSrc is
// the position on the concatenated source timeline the transcript is timed
// against, dst is the remapped contiguous destination position.
type cut struct {
	clipID    string
	clipSrc   types.Range
	globalSrc types.Range
	dst       time.Duration
}

// sequenceARoll derives the silence-trimmed cut list for the dialogue clips in
// source order. Silences shorter than the minimum, or within the speech guard
// of a transcript token, are kept; clips without silence data are kept whole.
func sequenceARoll(dialogue []types.Assignment, tokens []types.Token, dstStart time.Duration, cfg Config) []cut {
	var out []cut
	srcBase := time.Duration(0)
	dst := dstStart

	for _, a := range dialogue {
		kept := keepRanges(a, tokens, srcBase, cfg)
		for _, k := range kept {
			out = append(out, cut{
				clipID:    a.Clip.ID,
				clipSrc:   k,
				globalSrc: types.Range{Start: srcBase + k.Start, End: srcBase + k.End},
				dst:       dst,
			})
			dst += k.Duration()
		}
		srcBase += a.Clip.Duration
	}
	return out
}

// keepRanges subtracts the accepted silent intervals from one clip.
func keepRanges(a types.Assignment, tokens []types.Token, srcBase time.Duration, cfg Config) []types.Range {
	full := types.Range{Start: 0, End: a.Clip.Duration}
	if full.Duration() <= 0 {
		return nil
	}

	var removed []types.Range
	for _, sil := range a.SilenceCuts {
		if sil.Duration() < cfg.SilenceMin {
			continue
		}
		global := types.Range{Start: srcBase + sil.Start, End: srcBase + sil.End}
		if touchesSpeech(global, tokens, cfg.SpeechGuard) {
			continue
		}
		removed = append(removed, clampRange(sil, full))
	}

	if len(removed) == 0 {
		return []types.Range{full}
	}

	var kept []types.Range
	cursor := full.Start
	for _, r := range removed {
		if r.Start > cursor {
			kept = append(kept, types.Range{Start: cursor, End: r.Start})
		}
		if r.End > cursor {
			cursor = r.End
		}
	}
	if cursor < full.End {
		kept = append(kept, types.Range{Start: cursor, End: full.End})
	}
	return kept
}

// touchesSpeech reports whether the silence, widened by the guard, overlaps
// any spoken token. Such silences stay in the cut to protect speech onsets.
func touchesSpeech(sil types.Range, tokens []types.Token, guard time.Duration) bool {
	padded := types.Range{Start: sil.Start - guard, End: sil.End + guard}
	for _, t := range tokens {
		if padded.Overlaps(types.Range{Start: dur(t.Start), End: dur(t.End)}) {
			return true
		}
	}
	return false
}

func clampRange(r, bounds types.Range) types.Range {
	if r.Start < bounds.Start {
		r.Start = bounds.Start
	}
	if r.End > bounds.End {
		r.End = bounds.End
	}
	return r
}

// mapToDest translates a source-timeline instant into destination time by
// walking the cut list. Instants inside removed spans collapse onto the next
// retained frame, which is what keeps chapter markers on the correct frame
// after dead air is gone.
func mapToDest(cuts []cut, t time.Duration) time.Duration {
	if len(cuts) == 0 {
		return 0
	}
	for _, c := range cuts {
		if t < c.globalSrc.Start {
			return c.dst
		}
		if t < c.globalSrc.End {
			return c.dst + (t - c.globalSrc.Start)
		}
	}
	last := cuts[len(cuts)-1]
	return last.dst + last.globalSrc.Duration()
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
