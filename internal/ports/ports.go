package ports

import (
	"context"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

// MediaProber answers technical questions about a media file. Only adapter
// calls suspend; the in-process algorithms never block.
type MediaProber interface {
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
}

// DescriptorFeed loads the per-clip analysis metadata for a shoot directory.
// Malformed entries are skipped and reported, never fatal for the batch.
type DescriptorFeed interface {
	Load(ctx context.Context, dir string) ([]types.ClipMeta, []types.Diagnostic, error)
}

// TranscriptSource loads the ordered token list for a run.
type TranscriptSource interface {
	Load(ctx context.Context, path string) ([]types.Token, error)
}
