package assemble

import (
	"github.com/upstarter/roughcut/internal/types"
)

// affectHints are filename cues that suggest an energetic opening.
var affectHints = map[string]bool{
	"energy":  true,
	"hype":    true,
	"epic":    true,
	"excited": true,
	"wow":     true,
}

const (
	bestTakeBonus = 1.0
	affectBonus   = 0.5
)

// selectHook picks the opening segment. Eligible clips are filename-tagged
// "hook" clips and high-confidence talking heads under the hook duration
// ceiling; mistake takes are excluded outright. Selection is fully
// deterministic: score, then lowest sequence index, then lexicographic id.
func selectHook(assigns []types.Assignment, cfg Config) *types.Assignment {
	var best *types.Assignment
	var bestScore float64

	for i := range assigns {
		a := &assigns[i]
		if a.Clip.TakeMarker == types.TakeMistake {
			continue
		}
		if !hookEligible(a, cfg) {
			continue
		}
		score := hookScore(a)
		if best == nil || score > bestScore || (score == bestScore && beats(a.Clip, best.Clip)) {
			best = a
			bestScore = score
		}
	}
	return best
}

func hookEligible(a *types.Assignment, cfg Config) bool {
	if a.Clip.HasHint("hook") {
		return true
	}
	return a.Bin == types.BinPrimaryTalkingHead &&
		a.Confidence >= cfg.HookMinConfidence &&
		a.Clip.Duration <= cfg.HookMax
}

func hookScore(a *types.Assignment) float64 {
	score := a.Confidence
	for _, h := range a.Clip.Hints {
		if affectHints[h] {
			score += affectBonus
			break
		}
	}
	if a.Clip.TakeMarker == types.TakeBest {
		score += bestTakeBonus
	}
	return score
}

// beats is the deterministic tie-break: earliest recorded take wins, then
// lexicographic id.
func beats(a, b types.ClipDescriptor) bool {
	if a.SequenceIndex != b.SequenceIndex {
		return a.SequenceIndex < b.SequenceIndex
	}
	return a.ID < b.ID
}
