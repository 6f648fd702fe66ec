// Package edl serializes the assembled timeline into the editor-importable
// interchange document and the plain chapter list used for publishing.
package edl

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/upstarter/roughcut/internal/types"
)

// Version identifies the interchange document layout.
const Version = 1

type Document struct {
	Version     int       `json:"version"`
	HookClipID  string    `json:"hook_clip_id,omitempty"`
	DurationSec float64   `json:"duration_sec"`
	Segments    []Segment `json:"segments"`
	Chapters    []Chapter `json:"chapters"`
}

type Segment struct {
	ClipID    string  `json:"clip_id,omitempty"`
	Asset     string  `json:"asset,omitempty"`
	Track     string  `json:"track"`
	SrcInSec  float64 `json:"src_in_sec"`
	SrcOutSec float64 `json:"src_out_sec"`
	DstInSec  float64 `json:"dst_in_sec"`
	Ducks     []Duck  `json:"ducks,omitempty"`
}

type Duck struct {
	FromSec    float64 `json:"from_sec"`
	ToSec      float64 `json:"to_sec"`
	AttackSec  float64 `json:"attack_sec"`
	ReleaseSec float64 `json:"release_sec"`
	SustainDb  float64 `json:"sustain_db"`
}

type Chapter struct {
	Index    int     `json:"index"`
	Title    string  `json:"title"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}

// Marshal renders the timeline as an indented interchange document.
func Marshal(tl types.Timeline) ([]byte, error) {
	doc := Document{
		Version:     Version,
		HookClipID:  tl.HookClipID,
		DurationSec: sec(tl.Duration),
		Segments:    make([]Segment, 0, len(tl.Segments)),
		Chapters:    make([]Chapter, 0, len(tl.Chapters)),
	}
	for _, s := range tl.Segments {
		js := Segment{
			ClipID:    s.ClipID,
			Asset:     s.Asset,
			Track:     string(s.Track),
			SrcInSec:  sec(s.SrcIn),
			SrcOutSec: sec(s.SrcOut),
			DstInSec:  sec(s.DstIn),
		}
		for _, d := range s.Ducks {
			js.Ducks = append(js.Ducks, Duck{
				FromSec:    sec(d.From),
				ToSec:      sec(d.To),
				AttackSec:  sec(d.Attack),
				ReleaseSec: sec(d.Release),
				SustainDb:  d.SustainDb,
			})
		}
		doc.Segments = append(doc.Segments, js)
	}
	for _, ch := range tl.Chapters {
		doc.Chapters = append(doc.Chapters, Chapter{
			Index:    ch.Index,
			Title:    ch.Title,
			StartSec: sec(ch.Start),
			EndSec:   sec(ch.End),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal parses an interchange document back into a timeline.
func Unmarshal(b []byte) (types.Timeline, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return types.Timeline{}, fmt.Errorf("parse timeline document: %w", err)
	}
	if doc.Version != Version {
		return types.Timeline{}, fmt.Errorf("unsupported timeline document version %d", doc.Version)
	}
	tl := types.Timeline{
		HookClipID: doc.HookClipID,
		Duration:   dur(doc.DurationSec),
	}
	for _, js := range doc.Segments {
		s := types.EditSegment{
			ClipID: js.ClipID,
			Asset:  js.Asset,
			Track:  types.Track(js.Track),
			SrcIn:  dur(js.SrcInSec),
			SrcOut: dur(js.SrcOutSec),
			DstIn:  dur(js.DstInSec),
		}
		for _, d := range js.Ducks {
			s.Ducks = append(s.Ducks, types.DuckEnvelope{
				From:      dur(d.FromSec),
				To:        dur(d.ToSec),
				Attack:    dur(d.AttackSec),
				Release:   dur(d.ReleaseSec),
				SustainDb: d.SustainDb,
			})
		}
		tl.Segments = append(tl.Segments, s)
	}
	for _, ch := range doc.Chapters {
		tl.Chapters = append(tl.Chapters, types.Chapter{
			Index: ch.Index,
			Title: ch.Title,
			Start: dur(ch.StartSec),
			End:   dur(ch.EndSec),
		})
	}
	return tl, nil
}

// ChapterList renders the "HH:MM:SS title" lines published as video-platform
// chapter metadata.
func ChapterList(tl types.Timeline) string {
	var b strings.Builder
	for _, ch := range tl.Chapters {
		b.WriteString(timestamp(ch.Start))
		b.WriteString(" ")
		b.WriteString(ch.Title)
		b.WriteString("\n")
	}
	return b.String()
}

func timestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func sec(d time.Duration) float64 { return float64(d) / float64(time.Second) }
func dur(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }
