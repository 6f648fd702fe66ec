// Package segmenter derives ordered, non-overlapping chapters from the
// timestamped transcript in a single forward pass.
package segmenter

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/upstarter/roughcut/internal/types"
)

type Config struct {
	// MinChapter is the minimum committed chapter length; a raised boundary
	// that would produce a shorter chapter is deferred, never forced.
	MinChapter time.Duration
	// PauseThreshold is the inter-token gap that raises a boundary candidate.
	PauseThreshold time.Duration
	// BoundaryKeywords raise a candidate when a token's normalized text
	// matches one of them.
	BoundaryKeywords []string
}

func DefaultConfig() Config {
	return Config{
		MinChapter:     60 * time.Second,
		PauseThreshold: 3 * time.Second,
		BoundaryKeywords: []string{
			"introduction", "next", "finally", "conclusion",
		},
	}
}

const (
	titleMaxWords = 6
	titleMaxRunes = 48
)

// Segment produces the chapter list for a token sequence. With no tokens at
// all it degrades to a single synthetic chapter spanning total, reported via a
// notice: a timeline always carries at least one chapter.
func Segment(tokens []types.Token, total time.Duration, cfg Config) ([]types.Chapter, []types.Notice) {
	if len(tokens) == 0 {
		return []types.Chapter{{Index: 0, Title: "Chapter 1", Start: 0, End: total}},
			[]types.Notice{{Component: "segmenter", Message: "no transcript; emitted a single synthetic chapter"}}
	}

	keywords := make(map[string]bool, len(cfg.BoundaryKeywords))
	for _, k := range cfg.BoundaryKeywords {
		keywords[normalizeWord(k)] = true
	}

	var chapters []types.Chapter
	// The first chapter starts at zero, at or before the first spoken token.
	chapStart := time.Duration(0)
	chapKeyword := false
	chapTitleFrom := 0

	commit := func(end time.Duration, nextTitleFrom int, nextKeyword bool) {
		chapters = append(chapters, types.Chapter{
			Index: len(chapters),
			Title: title(tokens, chapTitleFrom, chapKeyword, len(chapters)),
			Start: chapStart,
			End:   end,
		})
		chapStart = end
		chapKeyword = nextKeyword
		chapTitleFrom = nextTitleFrom
	}

	for i := 1; i < len(tokens); i++ {
		gap := dur(tokens[i].Start) - dur(tokens[i-1].End)
		keyword := keywords[normalizeWord(tokens[i].Text)]
		if gap < cfg.PauseThreshold && !keyword {
			continue
		}
		// A keyword opens the new chapter at its own start; a pause closes the
		// old one where speech actually stopped.
		candidate := dur(tokens[i-1].End)
		if keyword {
			candidate = dur(tokens[i].Start)
		}
		// Deferred-commit rule: a candidate only lands when the chapter it
		// closes meets the minimum; otherwise the next raised boundary gets
		// another chance. Content is never shortened to force a split.
		if candidate-chapStart < cfg.MinChapter {
			continue
		}
		commit(candidate, i, keyword)
	}

	// The final chapter always reaches the last token, regardless of length.
	last := dur(tokens[len(tokens)-1].End)
	if last < chapStart {
		last = chapStart
	}
	chapters = append(chapters, types.Chapter{
		Index: len(chapters),
		Title: title(tokens, chapTitleFrom, chapKeyword, len(chapters)),
		Start: chapStart,
		End:   last,
	})
	return chapters, nil
}

// title derives a chapter title from the first few content words after the
// boundary when a keyword fired, and falls back to an ordinal otherwise.
func title(tokens []types.Token, from int, keyword bool, ordinal int) string {
	if !keyword {
		return fmt.Sprintf("Chapter %d", ordinal+1)
	}
	var words []string
	runes := 0
	for i := from; i < len(tokens) && len(words) < titleMaxWords; i++ {
		w := strings.TrimSpace(tokens[i].Text)
		if w == "" {
			continue
		}
		runes += len([]rune(w)) + 1
		if runes > titleMaxRunes {
			break
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return fmt.Sprintf("Chapter %d", ordinal+1)
	}
	return strings.Join(words, " ")
}

func normalizeWord(s string) string {
	return strings.TrimFunc(strings.ToLower(strings.TrimSpace(s)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
