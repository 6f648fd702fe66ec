package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "roughcut <shoot-dir>",
		Short:        "Assemble a first-pass edit from raw footage and a transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().String("transcript", "", "Transcript JSON path (omit for degraded mode)")
	root.Flags().String("music", "", "Music bed asset path")
	root.Flags().String("config", "roughcut.yaml", "Options file")
	root.Flags().BoolP("verbose", "v", false, "Verbose logging")

	// Hidden tuning flag (internal)
	root.Flags().Int("workers", 0, "Per-clip worker count (0 = CPU cores)")
	_ = root.Flags().MarkHidden("workers")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
