// Package classify assigns clip descriptors to semantic bins using an ordered
// list of heuristic rules: first match wins, so behavior stays deterministic
// and explainable without per-bin dispatch.
package classify

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

type Config struct {
	// TalkingHeadMin separates primary talking-head clips from shorter
	// secondary dialogue.
	TalkingHeadMin time.Duration
	// CutawayMin/CutawayMax bound the duration window for generic cutaways.
	CutawayMin time.Duration
	CutawayMax time.Duration
	// MinViable is the floor below which a clip cannot be used at all.
	MinViable time.Duration
}

func DefaultConfig() Config {
	return Config{
		TalkingHeadMin: 30 * time.Second,
		CutawayMin:     10 * time.Second,
		CutawayMax:     60 * time.Second,
		MinViable:      3 * time.Second,
	}
}

// hintBins maps explicit filename category tokens to bins. An explicit token
// overrides every other signal.
var hintBins = []struct {
	token string
	bin   types.Bin
}{
	{"hook", types.BinPrimaryTalkingHead},
	{"cta", types.BinSecondaryDialogue},
	{"broll", types.BinGenericCutaway},
	{"product", types.BinCutawayProduct},
	{"screen", types.BinCutawayScreen},
	{"screencap", types.BinCutawayScreen},
}

var screenCameraTags = map[string]bool{
	"screen":  true,
	"obs":     true,
	"capture": true,
}

var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
}

type rule struct {
	name       string
	bin        types.Bin
	confidence float64
	match      func(c types.ClipDescriptor, cfg Config) bool
}

// Confidence decreases the further down the list a match occurs, so consumers
// can flag low-confidence assignments for review without blocking the run.
var rules = []rule{
	{
		name: "explicit-hint", confidence: 1.0,
		match: func(c types.ClipDescriptor, cfg Config) bool {
			return c.Duration > 0 && explicitBin(c) != ""
		},
	},
	{
		name: "primary-talking-head", bin: types.BinPrimaryTalkingHead, confidence: 0.9,
		match: func(c types.ClipDescriptor, cfg Config) bool {
			return viable(c, cfg) && c.HasFace.True() && c.HasSpeech.True() && c.Duration > cfg.TalkingHeadMin
		},
	},
	{
		name: "secondary-dialogue", bin: types.BinSecondaryDialogue, confidence: 0.8,
		match: func(c types.ClipDescriptor, cfg Config) bool {
			return viable(c, cfg) && c.HasFace.True() && c.HasSpeech.True()
		},
	},
	{
		name: "screen-capture", bin: types.BinCutawayScreen, confidence: 0.75,
		match: func(c types.ClipDescriptor, cfg Config) bool {
			return viable(c, cfg) && screenCameraTags[c.CameraTag]
		},
	},
	{
		name: "generic-cutaway", bin: types.BinGenericCutaway, confidence: 0.6,
		match: func(c types.ClipDescriptor, cfg Config) bool {
			return viable(c, cfg) && c.HasFace == types.TriFalse &&
				c.Duration >= cfg.CutawayMin && c.Duration <= cfg.CutawayMax
		},
	},
	{
		name: "audio-only", bin: types.BinAudioOnly, confidence: 0.5,
		match: func(c types.ClipDescriptor, cfg Config) bool {
			if !viable(c, cfg) || !c.HasSpeech.True() {
				return false
			}
			// No usable video signal: an audio container, or a clip the face
			// detector never produced a verdict for.
			return audioExts[strings.ToLower(filepath.Ext(c.Path))] || !c.HasFace.Known()
		},
	},
	{
		// Catch-all: zero duration, below the viability floor, unreadable, or
		// contradictory signals all land here.
		name: "reject", bin: types.BinReject, confidence: 0.3,
		match: func(types.ClipDescriptor, Config) bool { return true },
	},
}

// RejectConfidence is the confidence of the lowest-priority rule.
const RejectConfidence = 0.3

// Classify maps a descriptor to exactly one bin with a confidence score.
// Pure, total, and deterministic: the same descriptor always yields the same
// result, and no descriptor raises.
func Classify(c types.ClipDescriptor, cfg Config) (types.Bin, float64) {
	for _, r := range rules {
		if !r.match(c, cfg) {
			continue
		}
		bin := r.bin
		if r.name == "explicit-hint" {
			bin = explicitBin(c)
		}
		return bin, r.confidence
	}
	// Unreachable: the catch-all always matches.
	return types.BinReject, RejectConfidence
}

func explicitBin(c types.ClipDescriptor) types.Bin {
	for _, hb := range hintBins {
		if c.HasHint(hb.token) {
			return hb.bin
		}
	}
	return ""
}

func viable(c types.ClipDescriptor, cfg Config) bool {
	return c.Duration > cfg.MinViable
}
