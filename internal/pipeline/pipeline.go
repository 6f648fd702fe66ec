package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/upstarter/roughcut/internal/domain/edl"
	"github.com/upstarter/roughcut/internal/ports"
	"github.com/upstarter/roughcut/internal/ports/adapters/ffprobe"
	"github.com/upstarter/roughcut/internal/ports/adapters/mediafeed"
	"github.com/upstarter/roughcut/internal/ports/adapters/transcriptjson"
	"github.com/upstarter/roughcut/internal/usecase"
)

// Run wires the adapters, executes one pipeline pass, and writes the run
// artifacts: timeline.json, chapters.txt, and diagnostics.json.
func Run(ctx context.Context, cfg Config, log zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	opts, err := LoadOptions(cfg.OptionsPath)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = opts.Workers
	}

	uc := usecase.New(usecase.Deps{
		Prober:     ffprobe.New(cfg.FFprobePath),
		Feed:       mediafeed.New(),
		Transcript: transcriptjson.New(),
		Log:        log,
	})

	outRoot := cfg.OutDir
	if outRoot == "" {
		outRoot = "out"
	}
	runDir := buildRunOutDir(outRoot, cfg.MediaDir, time.Now().UTC())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	log.Info().Str("dir", runDir).Msg("run output dir")

	res, err := uc.Run(ctx, usecase.Input{
		MediaDir:       cfg.MediaDir,
		TranscriptPath: cfg.TranscriptPath,
		Workers:        workers,
		LowConfidence:  opts.LowConfidence,
		Classify:       opts.classifyConfig(),
		Segment:        opts.segmentConfig(),
		Assemble:       opts.assembleConfig(cfg.MusicAsset),
	})
	if !res.Diagnostics.Empty() {
		// Diagnostics are written even for failed or cancelled runs so a
		// reviewer can recover without re-running the whole pipeline.
		if werr := writeJSON(filepath.Join(runDir, "diagnostics.json"), res.Diagnostics); werr != nil {
			log.Warn().Err(werr).Msg("write diagnostics")
		}
	}
	if err != nil {
		return err
	}

	tb, err := edl.Marshal(res.Timeline)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "timeline.json"), tb, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(runDir, "chapters.txt"), []byte(edl.ChapterList(res.Timeline)), 0o644); err != nil {
		return err
	}

	errFindings := 0
	for _, f := range res.Findings {
		if f.Severity == "error" {
			errFindings++
		}
	}
	log.Info().
		Int("segments", len(res.Timeline.Segments)).
		Int("chapters", len(res.Timeline.Chapters)).
		Int("error_findings", errFindings).
		Msg("run complete")
	if errFindings > 0 {
		log.Warn().Msg("timeline has error findings; review diagnostics.json before import")
	}
	return nil
}

// compile-time adapter checks
var _ ports.MediaProber = (*ffprobe.Adapter)(nil)
var _ ports.DescriptorFeed = (*mediafeed.Adapter)(nil)
var _ ports.TranscriptSource = (*transcriptjson.Adapter)(nil)

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func buildRunOutDir(outRoot, mediaDir string, now time.Time) string {
	name := normalizePathSegment(filepath.Base(filepath.Clean(mediaDir)))
	if name == "" {
		name = "shoot"
	}
	ts := now.UTC().Format("20060102-150405Z")
	suffix := strings.Split(uuid.NewString(), "-")[0][:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
