package assemble

import (
	"sort"

	"github.com/upstarter/roughcut/internal/types"
)

// TakePolicy decides how numbered alternate takes of the same shot compete.
type TakePolicy string

const (
	// TakePolicyMarker treats the explicit best-take marker as authoritative;
	// in an unmarked group the earliest recorded take stands.
	TakePolicyMarker TakePolicy = "marker"
	// TakePolicyNumber lets take numbers participate: in an unmarked group the
	// highest-numbered retake wins, a marker still overrides.
	TakePolicyNumber TakePolicy = "number"
)

// selectTakes reduces each take group to a single dialogue clip. Alternates
// that lose the selection are reported, not silently dropped.
func selectTakes(dialogue []types.Assignment, policy TakePolicy) ([]types.Assignment, []types.Diagnostic) {
	groups := map[string][]int{}
	for i, a := range dialogue {
		groups[a.Clip.TakeGroup] = append(groups[a.Clip.TakeGroup], i)
	}

	drop := map[int]bool{}
	var skipped []types.Diagnostic
	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		win := idxs[0]
		for _, i := range idxs[1:] {
			if takeBeats(dialogue[i].Clip, dialogue[win].Clip, policy) {
				win = i
			}
		}
		for _, i := range idxs {
			if i == win {
				continue
			}
			drop[i] = true
			skipped = append(skipped, types.Diagnostic{
				ClipID: dialogue[i].Clip.ID,
				Reason: "alternate take; selected " + dialogue[win].Clip.ID,
			})
		}
	}

	var kept []types.Assignment
	for i, a := range dialogue {
		if !drop[i] {
			kept = append(kept, a)
		}
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].ClipID < skipped[j].ClipID })
	return kept, skipped
}

func takeBeats(a, b types.ClipDescriptor, policy TakePolicy) bool {
	if (a.TakeMarker == types.TakeBest) != (b.TakeMarker == types.TakeBest) {
		return a.TakeMarker == types.TakeBest
	}
	if a.SequenceIndex != b.SequenceIndex {
		if policy == TakePolicyNumber {
			return a.SequenceIndex > b.SequenceIndex
		}
		return a.SequenceIndex < b.SequenceIndex
	}
	return a.ID < b.ID
}
