package usecase

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/upstarter/roughcut/internal/domain/assemble"
	"github.com/upstarter/roughcut/internal/domain/classify"
	"github.com/upstarter/roughcut/internal/domain/descriptor"
	"github.com/upstarter/roughcut/internal/domain/segmenter"
	"github.com/upstarter/roughcut/internal/domain/validate"
	"github.com/upstarter/roughcut/internal/ports"
	"github.com/upstarter/roughcut/internal/types"
)

type Deps struct {
	Prober     ports.MediaProber
	Feed       ports.DescriptorFeed
	Transcript ports.TranscriptSource
	Log        zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	MediaDir       string
	TranscriptPath string

	// Workers bounds the per-clip pool; zero means one worker per CPU core.
	Workers int

	// LowConfidence flags assignments below this confidence for human review
	// without blocking the run.
	LowConfidence float64

	Classify classify.Config
	Segment  segmenter.Config
	Assemble assemble.Config
}

type Result struct {
	Timeline    types.Timeline
	Diagnostics types.Diagnostics
	Findings    []types.Finding
}

// Run executes one pipeline pass. Per-clip work (probing, classification,
// silence pre-filtering) fans out over a bounded pool and joins before the
// deterministic single-threaded phases; a cancelled run returns the partial
// diagnostics gathered so far but never a partially built timeline.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	var diags types.Diagnostics

	metas, skipped, err := u.d.Feed.Load(ctx, in.MediaDir)
	if err != nil {
		return Result{Diagnostics: diags}, err
	}
	diags.Skipped = append(diags.Skipped, skipped...)

	descs := make([]types.ClipDescriptor, 0, len(metas))
	for _, m := range metas {
		d, err := descriptor.Build(m)
		if err != nil {
			diags.Skip(m.Path, "%v", err)
			continue
		}
		descs = append(descs, d)
	}
	descs, dropped := descriptor.Dedupe(descs)
	diags.Skipped = append(diags.Skipped, dropped...)
	u.d.Log.Info().Int("clips", len(descs)).Int("skipped", len(diags.Skipped)).Msg("descriptors built")

	assigns := u.classifyAll(ctx, descs, in)

	// The pool has joined; a cancelled run stops here with partial diagnostics.
	if err := ctx.Err(); err != nil {
		return Result{Diagnostics: diags}, err
	}

	kept := assigns[:0]
	for _, a := range assigns {
		if a.Bin == types.BinReject {
			diags.Reject(a.Clip.ID, "classified as reject (confidence %.2f)", a.Confidence)
			continue
		}
		if a.Confidence < in.LowConfidence {
			diags.LowConfidence = append(diags.LowConfidence, types.Diagnostic{
				ClipID: a.Clip.ID,
				Reason: string(a.Bin),
			})
		}
		kept = append(kept, a)
	}
	assigns = kept

	tokens := u.loadTranscript(ctx, in.TranscriptPath, &diags)

	chapters, notices := segmenter.Segment(tokens, dialogueTotal(assigns), in.Segment)
	diags.Notices = append(diags.Notices, notices...)

	if err := ctx.Err(); err != nil {
		return Result{Diagnostics: diags}, err
	}

	ares, err := assemble.Assemble(assigns, chapters, tokens, in.Assemble)
	if err != nil {
		// An invariant violation is an algorithm defect; the run aborts with
		// full diagnostic context instead of handing a broken timeline on.
		return Result{Diagnostics: diags}, err
	}
	diags.UnplacedBRoll = append(diags.UnplacedBRoll, ares.Unplaced...)
	diags.Skipped = append(diags.Skipped, ares.SkippedTakes...)
	diags.Notices = append(diags.Notices, ares.Notices...)

	findings := validate.Validate(ares.Timeline)
	diags.Findings = findings

	u.d.Log.Info().
		Int("segments", len(ares.Timeline.Segments)).
		Int("chapters", len(ares.Timeline.Chapters)).
		Dur("duration", ares.Timeline.Duration).
		Int("findings", len(findings)).
		Msg("timeline assembled")

	return Result{Timeline: ares.Timeline, Diagnostics: diags, Findings: findings}, nil
}

// classifyAll runs per-clip probing, classification, and silence pre-filtering
// across the worker pool. Each worker owns its result slot; aggregation
// happens after the join, so no incremental locking is needed.
func (u Usecase) classifyAll(ctx context.Context, descs []types.ClipDescriptor, in Input) []types.Assignment {
	workers := in.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(descs) {
		workers = len(descs)
	}
	if workers == 0 {
		return nil
	}

	slots := make([]clipResult, len(descs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = u.classifyOne(ctx, descs[i], in)
			}
		}()
	}
	for i := range descs {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var assigns []types.Assignment
	for _, s := range slots {
		if s.ok {
			assigns = append(assigns, s.assign)
		}
	}
	return assigns
}

// clipResult is the write-once output of one worker; each worker owns its
// slot exclusively.
type clipResult struct {
	ok     bool
	assign types.Assignment
}

func (u Usecase) classifyOne(ctx context.Context, d types.ClipDescriptor, in Input) (s clipResult) {
	if d.Duration == 0 && u.d.Prober != nil {
		probed, err := u.d.Prober.ProbeDuration(ctx, d.Path)
		if err != nil {
			// Unreadable media still classifies (as reject); continue with the
			// zero duration and let the catch-all rule absorb it.
			u.d.Log.Warn().Str("clip", d.ID).Err(err).Msg("probe failed")
		} else {
			d = supersede(d, probed)
		}
	}

	bin, conf := classify.Classify(d, in.Classify)
	a := types.Assignment{Clip: d, Bin: bin, Confidence: conf}
	for _, sil := range d.Silences {
		if sil.Duration() >= in.Assemble.SilenceMin {
			a.SilenceCuts = append(a.SilenceCuts, sil)
		}
	}
	s.ok = true
	s.assign = a
	return s
}

// supersede returns a fresh descriptor with the probed duration; descriptors
// are immutable, re-analysis replaces them.
func supersede(d types.ClipDescriptor, probed time.Duration) types.ClipDescriptor {
	d.Duration = probed
	return d
}

func (u Usecase) loadTranscript(ctx context.Context, path string, diags *types.Diagnostics) []types.Token {
	if path == "" {
		diags.Notice("transcript", "no transcript supplied; running degraded")
		return nil
	}
	tokens, err := u.d.Transcript.Load(ctx, path)
	if err != nil {
		diags.Notice("transcript", "transcript unavailable (%v); running degraded", err)
		return nil
	}
	return tokens
}

func dialogueTotal(assigns []types.Assignment) time.Duration {
	var total time.Duration
	for _, a := range assigns {
		if a.Bin.Dialogue() {
			total += a.Clip.Duration
		}
	}
	return total
}
