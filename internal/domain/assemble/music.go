package assemble

import (
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

// musicBed lays the configured music asset under the whole timeline and
// attaches a duck envelope for every dialogue window. The envelope is data for
// the export collaborator; no audio is rendered here.
func musicBed(total time.Duration, tokens []types.Token, cuts []cut, hookSpan *types.Range, cfg Config) types.EditSegment {
	var spans []types.Range
	if hookSpan != nil {
		spans = append(spans, *hookSpan)
	}
	for _, t := range tokens {
		from := mapToDest(cuts, dur(t.Start))
		to := mapToDest(cuts, dur(t.End))
		if to > from {
			spans = append(spans, types.Range{Start: from, End: to})
		}
	}

	// Windows closer than attack+release are merged: re-opening the bed for a
	// breath between sentences sounds worse than staying ducked.
	merged := mergeRanges(spans, cfg.DuckAttack+cfg.DuckRelease)

	seg := types.EditSegment{
		Asset:  cfg.MusicAsset,
		Track:  types.TrackMusic,
		SrcIn:  0,
		SrcOut: total,
		DstIn:  0,
	}
	for _, r := range merged {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > total {
			r.End = total
		}
		if r.End <= r.Start {
			continue
		}
		seg.Ducks = append(seg.Ducks, types.DuckEnvelope{
			From:      r.Start,
			To:        r.End,
			Attack:    cfg.DuckAttack,
			Release:   cfg.DuckRelease,
			SustainDb: cfg.DuckDb,
		})
	}
	return seg
}

// mergeRanges coalesces sorted-or-not ranges whose gap is at most tol.
func mergeRanges(rs []types.Range, tol time.Duration) []types.Range {
	if len(rs) == 0 {
		return nil
	}
	sorted := make([]types.Range, len(rs))
	copy(sorted, rs)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Start < sorted[j-1].Start; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	out := []types.Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Start-last.End <= tol {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
