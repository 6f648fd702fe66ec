package descriptor

import (
	"testing"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

func TestBuild_FilenameParsing(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantID     string
		wantHints  []string
		wantMarker types.TakeMarker
		wantSeq    int
		wantNorm   bool
	}{
		{
			name:       "best take marker",
			path:       "/footage/Intro_BEST.mp4",
			wantID:     "intro-best",
			wantHints:  []string{"intro"},
			wantMarker: types.TakeBest,
		},
		{
			name:       "mistake marker",
			path:       "/footage/outro mistake.mov",
			wantID:     "outro-mistake",
			wantHints:  []string{"outro"},
			wantMarker: types.TakeMistake,
		},
		{
			name:      "numbered take",
			path:      "/footage/broll office (2).mov",
			wantID:    "broll-office-2",
			wantHints: []string{"broll", "office"},
			wantSeq:   2,
		},
		{
			name:      "normalized variant",
			path:      "/footage/interview_normalized.mp4",
			wantID:    "interview-normalized",
			wantHints: []string{"interview"},
			wantNorm:  true,
		},
		{
			name:      "date tokens dropped",
			path:      "/footage/20260115 demo screen.mp4",
			wantID:    "20260115-demo-screen",
			wantHints: []string{"demo", "screen"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(types.ClipMeta{Path: tt.path, Duration: 10 * time.Second})
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if d.ID != tt.wantID {
				t.Fatalf("id = %q, want %q", d.ID, tt.wantID)
			}
			if len(d.Hints) != len(tt.wantHints) {
				t.Fatalf("hints = %v, want %v", d.Hints, tt.wantHints)
			}
			for i := range d.Hints {
				if d.Hints[i] != tt.wantHints[i] {
					t.Fatalf("hints = %v, want %v", d.Hints, tt.wantHints)
				}
			}
			if d.TakeMarker != tt.wantMarker {
				t.Fatalf("marker = %q, want %q", d.TakeMarker, tt.wantMarker)
			}
			if d.SequenceIndex != tt.wantSeq {
				t.Fatalf("seq = %d, want %d", d.SequenceIndex, tt.wantSeq)
			}
			if d.Normalized != tt.wantNorm {
				t.Fatalf("normalized = %v, want %v", d.Normalized, tt.wantNorm)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := Build(types.ClipMeta{Path: "  "}); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := Build(types.ClipMeta{Path: "a.mp4", Duration: -time.Second}); err == nil {
		t.Fatalf("expected error for negative duration")
	}
}

func TestDedupe_RetentionInvariant(t *testing.T) {
	mk := func(path string) types.ClipDescriptor {
		d, err := Build(types.ClipMeta{Path: path, Duration: 5 * time.Second})
		if err != nil {
			t.Fatalf("build %s: %v", path, err)
		}
		return d
	}

	t.Run("un-normalized wins", func(t *testing.T) {
		kept, dropped := Dedupe([]types.ClipDescriptor{
			mk("intro_normalized.mp4"),
			mk("intro.mp4"),
		})
		if len(kept) != 1 || kept[0].Normalized {
			t.Fatalf("expected the un-normalized variant, got %+v", kept)
		}
		if len(dropped) != 1 {
			t.Fatalf("expected one dropped variant, got %d", len(dropped))
		}
	})

	t.Run("normalized survives alone", func(t *testing.T) {
		kept, dropped := Dedupe([]types.ClipDescriptor{mk("intro_normalized.mp4")})
		if len(kept) != 1 || !kept[0].Normalized {
			t.Fatalf("expected the normalized variant to survive, got %+v", kept)
		}
		if len(dropped) != 0 {
			t.Fatalf("expected nothing dropped, got %v", dropped)
		}
	})

	t.Run("distinct take indices never merge", func(t *testing.T) {
		kept, dropped := Dedupe([]types.ClipDescriptor{
			mk("intro (1).mp4"),
			mk("intro (2).mp4"),
		})
		if len(kept) != 2 {
			t.Fatalf("expected both takes kept, got %d", len(kept))
		}
		if len(dropped) != 0 {
			t.Fatalf("expected nothing dropped, got %v", dropped)
		}
	})

	t.Run("order independent of which variant comes first", func(t *testing.T) {
		kept, _ := Dedupe([]types.ClipDescriptor{
			mk("intro.mp4"),
			mk("intro_normalized.mp4"),
		})
		if len(kept) != 1 || kept[0].Normalized {
			t.Fatalf("expected the un-normalized variant, got %+v", kept)
		}
	})
}

func TestBuild_TakeGroup(t *testing.T) {
	a, _ := Build(types.ClipMeta{Path: "intro setup (1).mp4", Duration: time.Second})
	b, _ := Build(types.ClipMeta{Path: "intro setup (2)_BEST.mp4", Duration: time.Second})
	if a.TakeGroup != b.TakeGroup {
		t.Fatalf("expected same take group, got %q and %q", a.TakeGroup, b.TakeGroup)
	}
	c, _ := Build(types.ClipMeta{Path: "outro.mp4", Duration: time.Second})
	if c.TakeGroup == a.TakeGroup {
		t.Fatalf("expected distinct take groups")
	}
}
