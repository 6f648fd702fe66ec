package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

func seg(clipID string, track types.Track, dstIn, length time.Duration) types.EditSegment {
	return types.EditSegment{
		ClipID: clipID,
		Track:  track,
		SrcIn:  0,
		SrcOut: length,
		DstIn:  dstIn,
	}
}

func cleanTimeline() types.Timeline {
	return types.Timeline{
		Segments: []types.EditSegment{
			seg("hook", types.TrackARoll, 0, 8*time.Second),
			seg("talk", types.TrackARoll, 8*time.Second, 40*time.Second),
			seg("broll", types.TrackBRoll, 12*time.Second, 10*time.Second),
		},
		Chapters: []types.Chapter{
			{Index: 0, Title: "Chapter 1", Start: 0, End: 30 * time.Second},
			{Index: 1, Title: "Chapter 2", Start: 30 * time.Second, End: 48 * time.Second},
		},
		Duration: 48 * time.Second,
	}
}

func TestValidate_CleanTimeline(t *testing.T) {
	if findings := Validate(cleanTimeline()); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestValidate_Findings(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*types.Timeline)
		want string
	}{
		{
			name: "zero duration",
			mod: func(tl *types.Timeline) {
				tl.Segments = nil
				tl.Chapters = nil
				tl.Duration = 0
			},
			want: "duration is zero",
		},
		{
			name: "same-track overlap",
			mod: func(tl *types.Timeline) {
				tl.Segments[1].DstIn = 6 * time.Second
			},
			want: "overlap",
		},
		{
			name: "chapter past the end",
			mod: func(tl *types.Timeline) {
				tl.Chapters[1].End = 60 * time.Second
			},
			want: "outside the timeline",
		},
		{
			name: "chapters out of order",
			mod: func(tl *types.Timeline) {
				tl.Chapters[1].Start = 0
			},
			want: "not strictly after",
		},
		{
			name: "duck outside its segment",
			mod: func(tl *types.Timeline) {
				tl.Segments = append(tl.Segments, types.EditSegment{
					Asset:  "bed.mp3",
					Track:  types.TrackMusic,
					SrcIn:  0,
					SrcOut: 48 * time.Second,
					DstIn:  0,
					Ducks: []types.DuckEnvelope{
						{From: 40 * time.Second, To: 55 * time.Second, SustainDb: -12},
					},
				})
			},
			want: "duck window",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := cleanTimeline()
			tt.mod(&tl)
			findings := Validate(tl)
			if len(findings) == 0 {
				t.Fatalf("expected a finding")
			}
			found := false
			for _, f := range findings {
				if strings.Contains(f.Message, tt.want) {
					if f.Severity != types.SeverityError {
						t.Fatalf("finding %q has severity %s", f.Message, f.Severity)
					}
					found = true
				}
			}
			if !found {
				t.Fatalf("no finding mentions %q: %v", tt.want, findings)
			}
		})
	}
}

func TestValidate_CrossTrackOverlapAllowed(t *testing.T) {
	tl := cleanTimeline()
	// B-roll already overlays the talking head; that is the point of the track.
	if findings := Validate(tl); len(findings) != 0 {
		t.Fatalf("cross-track overlay flagged: %v", findings)
	}
}
