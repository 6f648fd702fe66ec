package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/upstarter/roughcut/internal/logging"
	"github.com/upstarter/roughcut/internal/pipeline"
)

func run(cmd *cobra.Command, shootDir string) error {
	outDir, _ := cmd.Flags().GetString("out")
	transcript, _ := cmd.Flags().GetString("transcript")
	music, _ := cmd.Flags().GetString("music")
	optionsPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	workers, _ := cmd.Flags().GetInt("workers")

	logging.Init(verbose)
	log := logging.WithComponent("pipeline")

	absDir, err := filepath.Abs(shootDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := pipeline.Config{
		MediaDir:       absDir,
		OutDir:         outDir,
		TranscriptPath: transcript,
		MusicAsset:     music,
		OptionsPath:    optionsPath,
		FFprobePath:    getenvDefault("ROUGHCUT_FFPROBE", "ffprobe"),
		Workers:        workers,
	}

	return pipeline.Run(ctx, cfg, log)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
