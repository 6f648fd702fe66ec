package segmenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/upstarter/roughcut/internal/types"
)

func tok(start, end float64, text string) types.Token {
	return types.Token{Start: start, End: end, Text: text}
}

// A 4s pause at 20s is deferred because the chapter would be too short; the
// pause at 62s commits, and the "finally" keyword at 610s opens the last
// chapter at its own start.
func TestSegment_DeferredBoundaries(t *testing.T) {
	tokens := []types.Token{
		tok(0, 5, "welcome"),
		tok(5.2, 12, "to"),
		tok(12.2, 20, "everyone"),
		// 4s pause: boundary raised at 20s but deferred.
		tok(24, 30, "today"),
		tok(30.2, 40, "we"),
		tok(40.2, 50, "cover"),
		tok(50.2, 62, "plans"),
		// 5s pause: boundary at 62s commits.
		tok(67, 100, "first"),
		tok(100.5, 300, "part"),
		tok(300.5, 609, "middle"),
		tok(610, 612, "finally"),
		tok(612.2, 620, "lets"),
		tok(620.2, 640, "wrap"),
	}

	chapters, notices := Segment(tokens, 640*time.Second, DefaultConfig())
	require.Empty(t, notices)
	require.Len(t, chapters, 3)

	require.Equal(t, time.Duration(0), chapters[0].Start)
	require.Equal(t, 62*time.Second, chapters[0].End)
	require.Equal(t, "Chapter 1", chapters[0].Title)

	require.Equal(t, 62*time.Second, chapters[1].Start)
	require.Equal(t, 610*time.Second, chapters[1].End)
	require.Equal(t, "Chapter 2", chapters[1].Title)

	require.Equal(t, 610*time.Second, chapters[2].Start)
	require.Equal(t, 640*time.Second, chapters[2].End)
	require.Equal(t, "finally lets wrap", chapters[2].Title)
}

func TestSegment_EmptyTranscript(t *testing.T) {
	chapters, notices := Segment(nil, 90*time.Second, DefaultConfig())
	require.Len(t, chapters, 1)
	require.Equal(t, time.Duration(0), chapters[0].Start)
	require.Equal(t, 90*time.Second, chapters[0].End)
	require.Equal(t, "Chapter 1", chapters[0].Title)
	require.Len(t, notices, 1)
	require.Equal(t, "segmenter", notices[0].Component)
}

func TestSegment_SingleRunStaysWhole(t *testing.T) {
	tokens := []types.Token{
		tok(0, 10, "one"),
		tok(10.1, 25, "continuous"),
		tok(25.1, 40, "thought"),
	}
	chapters, _ := Segment(tokens, 40*time.Second, DefaultConfig())
	require.Len(t, chapters, 1)
	require.Equal(t, 40*time.Second, chapters[0].End)
}

func TestSegment_KeywordDeferredInsideMinimum(t *testing.T) {
	// The keyword fires at 30s but the opening chapter would be too short,
	// so the whole sequence stays a single chapter.
	tokens := []types.Token{
		tok(0, 15, "intro"),
		tok(15.2, 29, "stuff"),
		tok(30, 35, "next"),
		tok(35.2, 50, "topic"),
	}
	chapters, _ := Segment(tokens, 50*time.Second, DefaultConfig())
	require.Len(t, chapters, 1)
}

func TestSegment_Properties(t *testing.T) {
	tokens := []types.Token{
		tok(0, 30, "a"), tok(30.2, 61, "b"),
		tok(66, 100, "c"), tok(100.2, 130, "d"),
		tok(136, 200, "e"), tok(200.2, 260, "f"),
		tok(266, 300, "g"),
	}
	cfg := DefaultConfig()
	chapters, _ := Segment(tokens, 300*time.Second, cfg)
	require.NotEmpty(t, chapters)

	for i, c := range chapters {
		require.Equal(t, i, c.Index)
		require.Less(t, c.Start, c.End, "chapter %d is empty", i)
		if i > 0 {
			require.Equal(t, chapters[i-1].End, c.Start, "chapters must tile without gaps")
		}
		if i < len(chapters)-1 {
			require.GreaterOrEqual(t, c.End-c.Start, cfg.MinChapter, "committed chapter %d below minimum", i)
		}
	}
	require.Equal(t, time.Duration(0), chapters[0].Start)
}
