package assemble

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/upstarter/roughcut/internal/types"
)

// brollWindowGap splits dialogue into separate overlay windows wherever the
// spoken content pauses this long on the destination timeline.
const brollWindowGap = 1500 * time.Millisecond

// window is a destination-time dialogue span still open for overlay, together
// with the normalized words spoken during it.
type window struct {
	span  types.Range
	words map[string]bool
}

// placeBRoll greedily assigns cutaway clips to dialogue windows on the A-roll
// track. Relevance is token overlap between the words spoken in a window and
// the clip's filename hints; ties go to the clip whose duration is closest to
// the window, then the earlier window, then lexicographic id. A placed overlay
// is clamped to the window duration, never allowed to exceed it. Whatever
// stays unmatched is reported as a leftover candidate.
func placeBRoll(cutaways []types.Assignment, cuts []cut, tokens []types.Token, cfg Config) ([]types.EditSegment, []types.Diagnostic) {
	windows := dialogueWindows(cuts, tokens)

	remaining := make([]types.Assignment, len(cutaways))
	copy(remaining, cutaways)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Clip.ID < remaining[j].Clip.ID })

	var placed []types.EditSegment
	for len(remaining) > 0 {
		bestClip, bestWin := -1, -1
		bestScore := 0
		var bestFit time.Duration

		for wi := range windows {
			w := &windows[wi]
			if w.span.Duration() <= 0 {
				continue
			}
			for ci := range remaining {
				score := overlapScore(remaining[ci].Clip.Hints, w.words)
				if score == 0 {
					continue
				}
				fit := absDur(remaining[ci].Clip.Duration - w.span.Duration())
				if bestClip == -1 || score > bestScore ||
					(score == bestScore && fit < bestFit) {
					bestClip, bestWin, bestScore, bestFit = ci, wi, score, fit
				}
			}
		}
		if bestClip == -1 {
			break
		}

		w := &windows[bestWin]
		clip := remaining[bestClip].Clip
		d := clip.Duration
		if d > w.span.Duration() {
			d = w.span.Duration()
		}
		placed = append(placed, types.EditSegment{
			ClipID: clip.ID,
			Track:  types.TrackBRoll,
			SrcIn:  0,
			SrcOut: d,
			DstIn:  w.span.Start,
		})
		w.span.Start += d
		remaining = append(remaining[:bestClip], remaining[bestClip+1:]...)
	}

	sort.Slice(placed, func(i, j int) bool { return placed[i].DstIn < placed[j].DstIn })

	var unplaced []types.Diagnostic
	for _, a := range remaining {
		unplaced = append(unplaced, types.Diagnostic{
			ClipID: a.Clip.ID,
			Reason: "no dialogue window matched the clip's hints",
		})
	}
	return placed, unplaced
}

// dialogueWindows groups tokens into contiguous destination-time runs. Tokens
// falling entirely inside removed silence collapse to zero width and are
// skipped.
func dialogueWindows(cuts []cut, tokens []types.Token) []window {
	var out []window
	for _, t := range tokens {
		from := mapToDest(cuts, dur(t.Start))
		to := mapToDest(cuts, dur(t.End))
		if to <= from {
			continue
		}
		words := tokenWords(t.Text)
		if len(out) > 0 && from-out[len(out)-1].span.End <= brollWindowGap {
			last := &out[len(out)-1]
			if to > last.span.End {
				last.span.End = to
			}
			for w := range words {
				last.words[w] = true
			}
			continue
		}
		out = append(out, window{span: types.Range{Start: from, End: to}, words: words})
	}
	return out
}

func tokenWords(text string) map[string]bool {
	out := map[string]bool{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if w != "" {
			out[w] = true
		}
	}
	return out
}

func overlapScore(hints []string, words map[string]bool) int {
	n := 0
	for _, h := range hints {
		if words[h] {
			n++
		}
	}
	return n
}

func absDur(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
