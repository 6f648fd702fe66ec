//go:build integration

package itest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/upstarter/roughcut/internal/domain/edl"
	"github.com/upstarter/roughcut/internal/pipeline"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestE2E drives a full pipeline pass over a fixture shoot: sidecars carry the
// analysis signals, a whisper-style transcript carries the timing, and the run
// artifacts come back through the real adapters and writers.
func TestE2E(t *testing.T) {
	tmp := t.TempDir()
	shoot := filepath.Join(tmp, "garden-shoot")
	if err := os.MkdirAll(shoot, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	writeFile(t, filepath.Join(shoot, "opener hook_BEST.json"), `{
		"path": "opener hook_BEST.mp4",
		"duration_sec": 8,
		"has_face": true,
		"has_speech": true
	}`)
	writeFile(t, filepath.Join(shoot, "main talk.json"), `{
		"path": "main talk.mp4",
		"duration_sec": 45,
		"has_face": true,
		"has_speech": true,
		"silences": [{"start": 17.2, "end": 19.3}]
	}`)
	writeFile(t, filepath.Join(shoot, "demo screen.json"), `{
		"path": "demo screen.mp4",
		"duration_sec": 20,
		"has_face": false,
		"has_speech": false
	}`)

	transcript := filepath.Join(tmp, "transcript.json")
	writeFile(t, transcript, `{
		"segments": [
			{"start": 2, "end": 17, "text": "here is the demo today", "words": [
				{"start": 2, "end": 5, "word": "here"},
				{"start": 5.2, "end": 9, "word": "is"},
				{"start": 9.2, "end": 12, "word": "the"},
				{"start": 12.2, "end": 15, "word": "demo"},
				{"start": 15.2, "end": 17, "word": "today"}
			]},
			{"start": 21, "end": 44, "text": "and more"}
		]
	}`)

	outDir := filepath.Join(tmp, "out")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := pipeline.Config{
		MediaDir:       shoot,
		OutDir:         outDir,
		TranscriptPath: transcript,
		MusicAsset:     "bed.mp3",
		FFprobePath:    "ffprobe",
	}
	if err := pipeline.Run(ctx, cfg, zerolog.Nop()); err != nil {
		t.Fatalf("pipeline run: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one run dir, got %v (%v)", entries, err)
	}
	runDir := filepath.Join(outDir, entries[0].Name())
	if !strings.HasPrefix(entries[0].Name(), "garden-shoot-") {
		t.Fatalf("run dir %q not named after the shoot", entries[0].Name())
	}

	tb, err := os.ReadFile(filepath.Join(runDir, "timeline.json"))
	if err != nil {
		t.Fatalf("read timeline: %v", err)
	}
	tl, err := edl.Unmarshal(tb)
	if err != nil {
		t.Fatalf("parse timeline: %v", err)
	}
	if tl.HookClipID != "opener-hook-best" {
		t.Fatalf("hook = %q", tl.HookClipID)
	}
	if tl.Duration <= 0 {
		t.Fatalf("duration = %s", tl.Duration)
	}
	if len(tl.Chapters) == 0 {
		t.Fatalf("no chapters in the timeline document")
	}

	hasMusic, hasBRoll := false, false
	for _, s := range tl.Segments {
		switch {
		case s.Asset == "bed.mp3":
			hasMusic = true
			if len(s.Ducks) == 0 {
				t.Fatalf("music bed carries no duck envelopes")
			}
		case s.ClipID == "demo-screen":
			hasBRoll = true
		}
	}
	if !hasMusic || !hasBRoll {
		t.Fatalf("timeline missing music bed or b-roll: %+v", tl.Segments)
	}

	cb, err := os.ReadFile(filepath.Join(runDir, "chapters.txt"))
	if err != nil {
		t.Fatalf("read chapters: %v", err)
	}
	if !strings.HasPrefix(string(cb), "00:00:00 ") {
		t.Fatalf("chapters.txt = %q, want a leading 00:00:00 entry", string(cb))
	}
}

// TestE2E_Cancelled proves a cancelled run leaves no timeline behind but still
// surfaces diagnostics when it got far enough to collect any.
func TestE2E_Cancelled(t *testing.T) {
	tmp := t.TempDir()
	shoot := filepath.Join(tmp, "shoot")
	if err := os.MkdirAll(shoot, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(shoot, "talk.json"), `{"path": "talk.mp4", "duration_sec": 30}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outDir := filepath.Join(tmp, "out")
	err := pipeline.Run(ctx, pipeline.Config{MediaDir: shoot, OutDir: outDir, FFprobePath: "ffprobe"}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected a cancellation error")
	}

	entries, rerr := os.ReadDir(outDir)
	if rerr != nil {
		t.Fatalf("read out dir: %v", rerr)
	}
	for _, e := range entries {
		if _, serr := os.Stat(filepath.Join(outDir, e.Name(), "timeline.json")); serr == nil {
			t.Fatalf("cancelled run wrote a timeline")
		}
	}
}
