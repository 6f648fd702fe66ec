// Package transcriptjson loads whisper-style transcript JSON and flattens it
// into the ordered token list the segmenter and assembler consume.
package transcriptjson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/upstarter/roughcut/internal/types"
)

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

type transcriptFile struct {
	Segments []segment `json:"segments"`
}

type segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []word  `json:"words,omitempty"`
}

type word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Load parses the transcript file into tokens. Word timestamps are preferred;
// segments without words degrade to phrase-level tokens. Tokens with
// non-positive spans or empty text are dropped so downstream passes can trust
// monotonic, non-empty input.
func (a *Adapter) Load(ctx context.Context, path string) ([]types.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf transcriptFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}

	var out []types.Token
	for _, s := range tf.Segments {
		if len(s.Words) > 0 {
			for _, w := range s.Words {
				out = appendToken(out, w.Start, w.End, w.Word)
			}
			continue
		}
		out = appendToken(out, s.Start, s.End, s.Text)
	}
	return out, nil
}

func appendToken(out []types.Token, start, end float64, text string) []types.Token {
	text = strings.TrimSpace(text)
	if text == "" || end <= start {
		return out
	}
	return append(out, types.Token{Start: start, End: end, Text: text})
}
