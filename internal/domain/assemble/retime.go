package assemble

import (
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

// retimeChapters translates chapter ranges from source time onto the final cut
// by walking the cut list, so markers account for removed silence and land on
// the correct destination frame. Chapters themselves are never re-segmented.
func retimeChapters(chapters []types.Chapter, cuts []cut, total time.Duration) []types.Chapter {
	out := make([]types.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		start := mapToDest(cuts, ch.Start)
		end := mapToDest(cuts, ch.End)
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		out = append(out, types.Chapter{
			Index: ch.Index,
			Title: ch.Title,
			Start: start,
			End:   end,
		})
	}
	// The opening chapter covers the hook as well, so it begins with the cut.
	if len(out) > 0 {
		out[0].Start = 0
	}
	return out
}
