package types

import "time"

// Tri is a three-valued detection flag: analysis collaborators may report a
// signal as present, absent, or not analyzed at all.
type Tri int8

const (
	TriUnknown Tri = iota
	TriFalse
	TriTrue
)

func (t Tri) Known() bool { return t != TriUnknown }
func (t Tri) True() bool  { return t == TriTrue }

// TriFromPtr maps the feed encoding (true|false|null) onto a Tri.
func TriFromPtr(b *bool) Tri {
	switch {
	case b == nil:
		return TriUnknown
	case *b:
		return TriTrue
	default:
		return TriFalse
	}
}

type TakeMarker string

const (
	TakeNone    TakeMarker = ""
	TakeBest    TakeMarker = "best"
	TakeMistake TakeMarker = "mistake"
)

// Range is a half-open [Start, End) span in clip-local or timeline time.
type Range struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

func (r Range) Duration() time.Duration { return r.End - r.Start }

func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// ClipMeta is the raw per-file signal set produced by the probing and analysis
// collaborators, before descriptor construction.
type ClipMeta struct {
	Path      string
	Duration  time.Duration
	HasFace   Tri
	HasSpeech Tri
	CameraTag string
	Silences  []Range
}

// ClipDescriptor is the normalized, immutable view of one source media file.
// Created once when a clip enters the pipeline; re-analysis supersedes the
// descriptor rather than mutating it.
type ClipDescriptor struct {
	ID            string
	Path          string
	Duration      time.Duration
	HasFace       Tri
	HasSpeech     Tri
	CameraTag     string
	Hints         []string
	TakeMarker    TakeMarker
	TakeGroup     string
	SequenceIndex int
	Normalized    bool
	Silences      []Range
}

func (c ClipDescriptor) HasHint(h string) bool {
	for _, t := range c.Hints {
		if t == h {
			return true
		}
	}
	return false
}

// Bin is a closed set of semantic clip categories.
type Bin string

const (
	BinPrimaryTalkingHead Bin = "primary-talking-head"
	BinSecondaryDialogue  Bin = "secondary-dialogue"
	BinCutawayProduct     Bin = "cutaway-product"
	BinCutawayScreen      Bin = "cutaway-screen"
	BinGenericCutaway     Bin = "generic-cutaway"
	BinAudioOnly          Bin = "audio-only"
	BinReject             Bin = "reject"
)

// Dialogue reports whether clips in the bin belong on the A-roll track.
func (b Bin) Dialogue() bool {
	return b == BinPrimaryTalkingHead || b == BinSecondaryDialogue
}

// Cutaway reports whether clips in the bin are B-roll overlay candidates.
func (b Bin) Cutaway() bool {
	return b == BinCutawayProduct || b == BinCutawayScreen || b == BinGenericCutaway
}

// Assignment pairs a descriptor with its classified bin and confidence, plus
// the silence candidates pre-filtered by the per-clip worker pass.
type Assignment struct {
	Clip       ClipDescriptor
	Bin        Bin
	Confidence float64

	// SilenceCuts are clip-local silent spans already filtered to the minimum
	// silence duration; the assembler applies the speech-onset guard.
	SilenceCuts []Range
}

// Token is one word or phrase of the transcript. Times are seconds on the
// concatenated source timeline and are the source of truth for timing.
type Token struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Chapter is a derived section of spoken content. Immutable once emitted; the
// assembler re-times chapters onto the final cut but never re-segments them.
type Chapter struct {
	Index int
	Title string
	Start time.Duration
	End   time.Duration
}

func (c Chapter) Duration() time.Duration { return c.End - c.Start }

type Track string

const (
	TrackARoll    Track = "a-roll"
	TrackBRoll    Track = "b-roll"
	TrackGraphics Track = "graphics"
	TrackDialogue Track = "dialogue"
	TrackMusic    Track = "music"
	TrackSFX      Track = "sfx"
)

// DuckEnvelope attaches a music-level reduction to a dialogue window. It is
// data for the export collaborator, not a rendered audio operation.
type DuckEnvelope struct {
	From      time.Duration
	To        time.Duration
	Attack    time.Duration
	Release   time.Duration
	SustainDb float64
}

// EditSegment is an atomic timeline entry. ClipID references a descriptor;
// Asset references a music/SFX file when ClipID is empty.
type EditSegment struct {
	ClipID string
	Asset  string
	Track  Track
	SrcIn  time.Duration
	SrcOut time.Duration
	DstIn  time.Duration
	Ducks  []DuckEnvelope
}

func (s EditSegment) Duration() time.Duration { return s.SrcOut - s.SrcIn }
func (s EditSegment) DstOut() time.Duration   { return s.DstIn + s.Duration() }

// Timeline is the assembled draft edit. Created once by the assembler and
// consumed read-only by the validator and the export collaborator.
type Timeline struct {
	Segments   []EditSegment
	Chapters   []Chapter
	HookClipID string
	Duration   time.Duration
}

// TrackSegments returns the segments on one track in slice order.
func (t Timeline) TrackSegments(track Track) []EditSegment {
	var out []EditSegment
	for _, s := range t.Segments {
		if s.Track == track {
			out = append(out, s)
		}
	}
	return out
}

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one advisory result from the quality validator.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
