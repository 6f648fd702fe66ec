// Package assemble synthesizes the draft timeline: hook selection, silence-cut
// A-roll sequencing, B-roll gap matching, music-bed ducking, and chapter
// re-timing onto the final cut.
package assemble

import (
	"sort"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

type Config struct {
	// HookMax is the duration ceiling for non-tagged hook candidates.
	HookMax time.Duration
	// HookMinConfidence gates untagged talking-head clips into hook eligibility.
	HookMinConfidence float64
	// SilenceMin is the shortest silent interval worth cutting.
	SilenceMin time.Duration
	// SpeechGuard keeps silences this close to token boundaries intact so
	// speech onsets are never clipped.
	SpeechGuard time.Duration
	// MusicAsset is the default music bed file; empty disables the music track.
	MusicAsset string
	// DuckDb is the music sustain level under dialogue, in dB.
	DuckDb float64
	DuckAttack  time.Duration
	DuckRelease time.Duration
	// TakePolicy decides how numbered alternate takes compete.
	TakePolicy TakePolicy
}

func DefaultConfig() Config {
	return Config{
		HookMax:           15 * time.Second,
		HookMinConfidence: 0.8,
		SilenceMin:        500 * time.Millisecond,
		SpeechGuard:       150 * time.Millisecond,
		DuckDb:            -12,
		DuckAttack:        200 * time.Millisecond,
		DuckRelease:       300 * time.Millisecond,
		TakePolicy:        TakePolicyMarker,
	}
}

// Result carries the timeline plus everything the assembler chose not to use.
// Unmatched cutaways and skipped takes are reported, never silently dropped.
type Result struct {
	Timeline     types.Timeline
	Unplaced     []types.Diagnostic
	SkippedTakes []types.Diagnostic
	Notices      []types.Notice
}

// Assemble builds the ordered edit decision list from classified clips,
// chapters, and the transcript. The pass is single-threaded and deterministic:
// identical input always yields an identical timeline.
func Assemble(assigns []types.Assignment, chapters []types.Chapter, tokens []types.Token, cfg Config) (Result, error) {
	var res Result

	hook := selectHook(assigns, cfg)
	if hook == nil {
		res.Notices = append(res.Notices, types.Notice{
			Component: "assembler",
			Message:   "no hook-eligible clip; timeline starts without a hook segment",
		})
	}

	var segments []types.EditSegment
	dstStart := time.Duration(0)
	if hook != nil {
		segments = append(segments, types.EditSegment{
			ClipID: hook.Clip.ID,
			Track:  types.TrackARoll,
			SrcIn:  0,
			SrcOut: hook.Clip.Duration,
			DstIn:  0,
		})
		dstStart = hook.Clip.Duration
	}

	dialogue := make([]types.Assignment, 0, len(assigns))
	for _, a := range assigns {
		if !a.Bin.Dialogue() {
			continue
		}
		if hook != nil && a.Clip.ID == hook.Clip.ID {
			continue
		}
		if a.Clip.TakeMarker == types.TakeMistake {
			res.SkippedTakes = append(res.SkippedTakes, types.Diagnostic{
				ClipID: a.Clip.ID,
				Reason: "take marked as mistake",
			})
			continue
		}
		dialogue = append(dialogue, a)
	}

	dialogue, altTakes := selectTakes(dialogue, cfg.TakePolicy)
	res.SkippedTakes = append(res.SkippedTakes, altTakes...)

	haveSilences := false
	for _, a := range dialogue {
		if len(a.SilenceCuts) > 0 {
			haveSilences = true
			break
		}
	}
	if len(dialogue) > 0 && !haveSilences {
		res.Notices = append(res.Notices, types.Notice{
			Component: "assembler",
			Message:   "no silence data; A-roll clips kept in full",
		})
	}

	cuts := sequenceARoll(dialogue, tokens, dstStart, cfg)
	for _, c := range cuts {
		segments = append(segments, types.EditSegment{
			ClipID: c.clipID,
			Track:  types.TrackARoll,
			SrcIn:  c.clipSrc.Start,
			SrcOut: c.clipSrc.End,
			DstIn:  c.dst,
		})
	}

	total := time.Duration(0)
	for _, s := range segments {
		if s.DstOut() > total {
			total = s.DstOut()
		}
	}

	placed, unplaced := placeBRoll(cutawaysOf(assigns), cuts, tokens, cfg)
	segments = append(segments, placed...)
	res.Unplaced = unplaced

	if cfg.MusicAsset != "" && total > 0 {
		var hookSpan *types.Range
		if hook != nil && hook.Clip.HasSpeech.True() {
			hookSpan = &types.Range{Start: 0, End: hook.Clip.Duration}
		}
		segments = append(segments, musicBed(total, tokens, cuts, hookSpan, cfg))
	}

	res.Timeline = types.Timeline{
		Segments: segments,
		Chapters: retimeChapters(chapters, cuts, total),
		Duration: total,
	}
	if hook != nil {
		res.Timeline.HookClipID = hook.Clip.ID
	}

	if err := checkInvariants(res.Timeline); err != nil {
		return Result{}, err
	}
	return res, nil
}

func cutawaysOf(assigns []types.Assignment) []types.Assignment {
	var out []types.Assignment
	for _, a := range assigns {
		if a.Bin.Cutaway() && a.Clip.TakeMarker != types.TakeMistake {
			out = append(out, a)
		}
	}
	return out
}

// checkInvariants verifies the assembled timeline before it leaves the
// package. A violation here is an algorithm defect and aborts the run.
func checkInvariants(tl types.Timeline) error {
	byTrack := map[types.Track][]types.EditSegment{}
	for _, s := range tl.Segments {
		byTrack[s.Track] = append(byTrack[s.Track], s)
	}
	for track, segs := range byTrack {
		sort.Slice(segs, func(i, j int) bool { return segs[i].DstIn < segs[j].DstIn })
		for i := 1; i < len(segs); i++ {
			if segs[i].DstIn < segs[i-1].DstOut() {
				return types.Invariantf("segments %q and %q overlap on track %s at %s",
					segs[i-1].ClipID, segs[i].ClipID, track, segs[i].DstIn)
			}
		}
	}
	for _, s := range tl.Segments {
		if s.Track == types.TrackBRoll && s.DstOut() > tl.Duration {
			return types.Invariantf("b-roll segment %q extends past timeline end", s.ClipID)
		}
	}
	return nil
}
