package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/upstarter/roughcut/internal/domain/assemble"
	"github.com/upstarter/roughcut/internal/domain/classify"
	"github.com/upstarter/roughcut/internal/domain/segmenter"
)

// Options is the recognized tuning surface, loadable from roughcut.yaml.
// Unset fields keep their defaults; options are threaded explicitly into the
// classifier, segmenter, and assembler rather than held as process state.
type Options struct {
	TalkingHeadMinSec  float64  `yaml:"talking_head_min_duration"`
	CutawayMinSec      float64  `yaml:"cutaway_duration_min"`
	CutawayMaxSec      float64  `yaml:"cutaway_duration_max"`
	MinViableSec       float64  `yaml:"min_viable_duration"`
	MinChapterSec      float64  `yaml:"min_chapter_duration"`
	PauseThresholdSec  float64  `yaml:"pause_threshold"`
	BoundaryKeywords   []string `yaml:"boundary_keywords"`
	SilenceMinSec      float64  `yaml:"silence_min_duration"`
	MusicDuckDb        float64  `yaml:"music_duck_db"`
	HookMaxSec         float64  `yaml:"hook_max_duration"`
	LowConfidence      float64  `yaml:"low_confidence"`
	Workers            int      `yaml:"workers"`
	TakePolicy         string   `yaml:"take_policy"`
}

// DefaultOptions mirrors the component defaults.
func DefaultOptions() Options {
	return Options{
		TalkingHeadMinSec: 30,
		CutawayMinSec:     10,
		CutawayMaxSec:     60,
		MinViableSec:      3,
		MinChapterSec:     60,
		PauseThresholdSec: 3,
		BoundaryKeywords:  segmenter.DefaultConfig().BoundaryKeywords,
		SilenceMinSec:     0.5,
		MusicDuckDb:       -12,
		HookMaxSec:        15,
		LowConfidence:     0.7,
		TakePolicy:        string(assemble.TakePolicyMarker),
	}
}

// LoadOptions reads roughcut.yaml over the defaults. A missing file is fine;
// a malformed one is not.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return Options{}, err
	}
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options %s: %w", path, err)
	}
	switch assemble.TakePolicy(opts.TakePolicy) {
	case "", assemble.TakePolicyMarker, assemble.TakePolicyNumber:
	default:
		return Options{}, fmt.Errorf("unknown take_policy %q", opts.TakePolicy)
	}
	return opts, nil
}

func (o Options) classifyConfig() classify.Config {
	return classify.Config{
		TalkingHeadMin: dur(o.TalkingHeadMinSec),
		CutawayMin:     dur(o.CutawayMinSec),
		CutawayMax:     dur(o.CutawayMaxSec),
		MinViable:      dur(o.MinViableSec),
	}
}

func (o Options) segmentConfig() segmenter.Config {
	return segmenter.Config{
		MinChapter:       dur(o.MinChapterSec),
		PauseThreshold:   dur(o.PauseThresholdSec),
		BoundaryKeywords: o.BoundaryKeywords,
	}
}

func (o Options) assembleConfig(musicAsset string) assemble.Config {
	cfg := assemble.DefaultConfig()
	cfg.HookMax = dur(o.HookMaxSec)
	cfg.SilenceMin = dur(o.SilenceMinSec)
	cfg.DuckDb = o.MusicDuckDb
	cfg.MusicAsset = musicAsset
	if o.TakePolicy != "" {
		cfg.TakePolicy = assemble.TakePolicy(o.TakePolicy)
	}
	return cfg
}

// Config is the full wiring for one run.
type Config struct {
	MediaDir       string
	OutDir         string
	TranscriptPath string
	MusicAsset     string
	OptionsPath    string
	FFprobePath    string
	Workers        int
}

func (c Config) Validate() error {
	if c.MediaDir == "" {
		return errors.New("media dir is empty")
	}
	st, err := os.Stat(c.MediaDir)
	if err != nil {
		return fmt.Errorf("stat media dir: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("media dir %s is not a directory", c.MediaDir)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	return nil
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
