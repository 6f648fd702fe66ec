// Package descriptor normalizes raw per-clip probe signals and filename
// conventions into immutable clip descriptors.
package descriptor

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/upstarter/roughcut/internal/types"
)

const normalizedSuffix = "_normalized"

var reTakeIndex = regexp.MustCompile(`\((\d+)\)\s*$`)

// Build constructs a descriptor from collaborator-supplied metadata plus the
// conventions encoded in the filename: hint tokens, _BEST/_MISTAKE take
// markers, "(N)" numbered takes, and the "_normalized" loudness variant.
func Build(m types.ClipMeta) (types.ClipDescriptor, error) {
	if strings.TrimSpace(m.Path) == "" {
		return types.ClipDescriptor{}, types.NewInputDataError("", "descriptor has empty path")
	}
	if m.Duration < 0 {
		return types.ClipDescriptor{}, types.NewInputDataError(m.Path, "negative duration %s", m.Duration)
	}

	base := strings.TrimSuffix(filepath.Base(m.Path), filepath.Ext(m.Path))
	name := strings.TrimSpace(base)

	normalized := false
	if strings.HasSuffix(strings.ToLower(name), normalizedSuffix) {
		normalized = true
		name = name[:len(name)-len(normalizedSuffix)]
	}

	seq := 0
	if sm := reTakeIndex.FindStringSubmatch(name); sm != nil {
		if n, err := strconv.Atoi(sm[1]); err == nil {
			seq = n
		}
		name = strings.TrimSpace(reTakeIndex.ReplaceAllString(name, ""))
	}

	tokens := tokenize(name)
	marker := types.TakeNone
	hints := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch t {
		case "best":
			marker = types.TakeBest
		case "mistake":
			marker = types.TakeMistake
		default:
			hints = append(hints, t)
		}
	}
	// The take group identifies alternates of the same shot: the in-order
	// content tokens with markers and counters stripped.
	group := strings.Join(hints, slugSep)

	sort.Strings(hints)
	hints = dedupe(hints)

	id := slug(base)
	if group == "" {
		group = id
	}

	return types.ClipDescriptor{
		ID:            id,
		Path:          m.Path,
		Duration:      m.Duration,
		HasFace:       m.HasFace,
		HasSpeech:     m.HasSpeech,
		CameraTag:     strings.ToLower(strings.TrimSpace(m.CameraTag)),
		Hints:         hints,
		TakeMarker:    marker,
		TakeGroup:     group,
		SequenceIndex: seq,
		Normalized:    normalized,
		Silences:      m.Silences,
	}, nil
}

// LogicalKey identifies the logical clip behind a descriptor: the slugged base
// name with the "_normalized" suffix stripped, plus the take index. Variants
// sharing a key are the same take; distinct take indices are never merged.
func LogicalKey(c types.ClipDescriptor) string {
	id := strings.TrimSuffix(c.ID, slugSep+strings.TrimPrefix(normalizedSuffix, "_"))
	return id + "#" + strconv.Itoa(c.SequenceIndex)
}

// Dedupe enforces the retention invariant: exactly one non-normalized variant
// of a logical clip is kept per take index; a normalized variant survives only
// when no un-normalized counterpart with the same take index exists. Dropped
// variants are reported, never silently discarded.
func Dedupe(descs []types.ClipDescriptor) ([]types.ClipDescriptor, []types.Diagnostic) {
	type slot struct {
		idx        int
		normalized bool
	}
	keep := make(map[string]slot, len(descs))
	var dropped []types.Diagnostic

	for i, d := range descs {
		key := LogicalKey(d)
		prev, ok := keep[key]
		if !ok {
			keep[key] = slot{idx: i, normalized: d.Normalized}
			continue
		}
		// Un-normalized wins; between two variants of the same kind the first
		// one in feed order is retained.
		if prev.normalized && !d.Normalized {
			dropped = append(dropped, types.Diagnostic{
				ClipID: descs[prev.idx].ID,
				Reason: "normalized variant superseded by " + d.ID,
			})
			keep[key] = slot{idx: i, normalized: false}
			continue
		}
		dropped = append(dropped, types.Diagnostic{
			ClipID: d.ID,
			Reason: "duplicate variant of " + descs[prev.idx].ID,
		})
	}

	out := make([]types.ClipDescriptor, 0, len(keep))
	for i, d := range descs {
		if s, ok := keep[LogicalKey(d)]; ok && s.idx == i {
			out = append(out, d)
		}
	}
	return out, dropped
}

func tokenize(s string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		t := b.String()
		b.Reset()
		// Pure digit runs are counters and dates, not content hints.
		if isDigits(t) {
			return
		}
		out = append(out, t)
	}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

const slugSep = "-"

func slug(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteString(slugSep)
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), slugSep)
}
