// Package mediafeed loads the per-clip JSON sidecars produced by the probing
// and analysis collaborators.
package mediafeed

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

// sidecarFile is the on-disk shape of one descriptor feed entry.
type sidecarFile struct {
	Path        string         `json:"path"`
	DurationSec float64        `json:"duration_sec"`
	HasFace     *bool          `json:"has_face"`
	HasSpeech   *bool          `json:"has_speech"`
	Camera      string         `json:"camera"`
	Silences    []sidecarRange `json:"silences"`
}

type sidecarRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Load reads every *.json sidecar under dir, in name order for determinism.
// Malformed sidecars are skipped with a diagnostic; only an unreadable
// directory fails the load.
func (a *Adapter) Load(ctx context.Context, dir string) ([]types.ClipMeta, []types.Diagnostic, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var metas []types.ClipMeta
	var skipped []types.Diagnostic
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			skipped = append(skipped, types.Diagnostic{ClipID: name, Reason: "unreadable sidecar: " + err.Error()})
			continue
		}
		var sc sidecarFile
		if err := json.Unmarshal(b, &sc); err != nil {
			skipped = append(skipped, types.Diagnostic{ClipID: name, Reason: "malformed sidecar: " + err.Error()})
			continue
		}
		if sc.Path == "" {
			skipped = append(skipped, types.Diagnostic{ClipID: name, Reason: "sidecar missing media path"})
			continue
		}
		path := sc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		meta := types.ClipMeta{
			Path:      path,
			Duration:  dur(sc.DurationSec),
			HasFace:   types.TriFromPtr(sc.HasFace),
			HasSpeech: types.TriFromPtr(sc.HasSpeech),
			CameraTag: sc.Camera,
		}
		for _, r := range sc.Silences {
			if r.End <= r.Start {
				continue
			}
			meta.Silences = append(meta.Silences, types.Range{Start: dur(r.Start), End: dur(r.End)})
		}
		metas = append(metas, meta)
	}
	return metas, skipped, nil
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
