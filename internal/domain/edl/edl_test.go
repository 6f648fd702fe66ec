package edl

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/upstarter/roughcut/internal/types"
)

func sampleTimeline() types.Timeline {
	return types.Timeline{
		HookClipID: "opener",
		Duration:   95 * time.Second,
		Segments: []types.EditSegment{
			{ClipID: "opener", Track: types.TrackARoll, SrcIn: 0, SrcOut: 8 * time.Second, DstIn: 0},
			{ClipID: "talk", Track: types.TrackARoll, SrcIn: 500 * time.Millisecond, SrcOut: 80 * time.Second, DstIn: 8 * time.Second},
			{
				Asset: "bed.mp3", Track: types.TrackMusic, SrcIn: 0, SrcOut: 95 * time.Second, DstIn: 0,
				Ducks: []types.DuckEnvelope{{
					From: 0, To: 60 * time.Second,
					Attack: 200 * time.Millisecond, Release: 300 * time.Millisecond,
					SustainDb: -12,
				}},
			},
		},
		Chapters: []types.Chapter{
			{Index: 0, Title: "Chapter 1", Start: 0, End: 62 * time.Second},
			{Index: 1, Title: "finally the wrap", Start: 62 * time.Second, End: 95 * time.Second},
		},
	}
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	in := sampleTimeline()
	b, err := Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(b), `"version": 1`)

	out, err := Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, in.HookClipID, out.HookClipID)
	require.Len(t, out.Segments, len(in.Segments))
	require.Len(t, out.Chapters, len(in.Chapters))

	tol := time.Millisecond
	require.InDelta(t, float64(in.Duration), float64(out.Duration), float64(tol))
	for i := range in.Segments {
		require.Equal(t, in.Segments[i].ClipID, out.Segments[i].ClipID)
		require.Equal(t, in.Segments[i].Asset, out.Segments[i].Asset)
		require.Equal(t, in.Segments[i].Track, out.Segments[i].Track)
		require.InDelta(t, float64(in.Segments[i].SrcIn), float64(out.Segments[i].SrcIn), float64(tol))
		require.InDelta(t, float64(in.Segments[i].SrcOut), float64(out.Segments[i].SrcOut), float64(tol))
		require.InDelta(t, float64(in.Segments[i].DstIn), float64(out.Segments[i].DstIn), float64(tol))
		require.Len(t, out.Segments[i].Ducks, len(in.Segments[i].Ducks))
	}
	for i := range in.Chapters {
		require.Equal(t, in.Chapters[i].Title, out.Chapters[i].Title)
		require.InDelta(t, float64(in.Chapters[i].Start), float64(out.Chapters[i].Start), float64(tol))
	}
}

func TestUnmarshal_RejectsUnknownVersion(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version": 99, "duration_sec": 1, "segments": [], "chapters": []}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "version")
}

func TestUnmarshal_RejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	require.Error(t, err)
}

func TestChapterList(t *testing.T) {
	got := ChapterList(types.Timeline{
		Chapters: []types.Chapter{
			{Index: 0, Title: "Chapter 1", Start: 0, End: 62 * time.Second},
			{Index: 1, Title: "Deep dive", Start: 62 * time.Second, End: 3725 * time.Second},
			{Index: 2, Title: "Wrap up", Start: 3725 * time.Second, End: 3800 * time.Second},
		},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Equal(t, []string{
		"00:00:00 Chapter 1",
		"00:01:02 Deep dive",
		"01:02:05 Wrap up",
	}, lines)
}
