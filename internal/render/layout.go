// Package render prepares slide text for the rendering layer: line layout
// under readability budgets, plus a caller-owned cache for the computed
// layouts. Pixel rendering itself lives downstream.
package render

import (
	"strings"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// Hard budgets trade exact wrapping for consistently readable slide bodies
// on a fixed 16:9 layout.
const (
	charBudget = 42
	wordBudget = 9
)

// SlideLayout is the display-ready form of one slide.
type SlideLayout struct {
	Kind         types.SlideKind `json:"kind"`
	SpeakerLabel string          `json:"speaker_label,omitempty"`
	Lines        []string        `json:"lines"`
}

// LayoutSlide wraps the slide body into lines no longer than the char/word
// budgets. Words longer than the whole budget get a line of their own.
func LayoutSlide(slide types.Slide) SlideLayout {
	layout := SlideLayout{
		Kind:         slide.Kind,
		SpeakerLabel: slide.SpeakerName,
	}
	words := strings.Fields(slide.Text)
	if len(words) == 0 {
		return layout
	}

	var cur []string
	curLen := 0
	flush := func() {
		if len(cur) > 0 {
			layout.Lines = append(layout.Lines, strings.Join(cur, " "))
			cur = nil
			curLen = 0
		}
	}
	for _, w := range words {
		wl := len([]rune(w))
		nextLen := curLen + wl
		if curLen > 0 {
			nextLen++
		}
		if len(cur) >= wordBudget || (nextLen > charBudget && len(cur) > 0) {
			flush()
			nextLen = wl
		}
		cur = append(cur, w)
		curLen = nextLen
	}
	flush()
	return layout
}
