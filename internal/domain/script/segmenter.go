// Package script parses annotated spoken-word scripts into ordered speech
// segments and derives the slide sequence from them.
package script

import (
	"math"
	"regexp"
	"strings"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// NarratorName is the fixed secondary speaker role every script may use.
const NarratorName = "Narrator"

const neutralEmotion = "neutral"

// Section headers are authoring scaffolding, not content; they never form
// segments.
var sectionHeaderRe = regexp.MustCompile(`(?m)^[ \t]*(Introduction|Body|Summary/Call to Action|Summary):?[ \t]*$`)

type parserState int

const (
	stateIdle parserState = iota
	stateInSegment
)

// accumulator is the parser state passed forward between lines. Methods
// return updated copies so there is no hidden mutable parser state.
type accumulator struct {
	state   parserState
	speaker string
	emotion string
	parts   []string
	out     []types.Segment
}

// flush emits the open segment if it accumulated non-empty text. A speaker
// marker with no text carried until the next marker is dropped silently.
func (a accumulator) flush() accumulator {
	if a.state != stateInSegment {
		return a
	}
	text := strings.TrimSpace(strings.Join(a.parts, " "))
	if text != "" {
		a.out = append(a.out, types.Segment{
			Speaker: a.speaker,
			Text:    text,
			Emotion: a.emotion,
			Order:   len(a.out),
		})
	}
	a.parts = nil
	return a
}

func (a accumulator) startSegment(speaker, emotion, rest string) accumulator {
	a = a.flush()
	a.state = stateInSegment
	a.speaker = speaker
	a.emotion = emotion
	a.parts = nil
	if rest != "" {
		a.parts = []string{rest}
	}
	return a
}

func (a accumulator) continueLine(line string) accumulator {
	if a.state != stateInSegment {
		// Idle: text before the first speaker marker has no owner.
		return a
	}
	a.parts = append(a.parts, line)
	return a
}

// Parse splits raw script text into ordered segments. Lines of the form
// "<Speaker>(<emotion>): <text>" open a segment for the principal speaker or
// the Narrator; any other non-empty line continues the open segment.
func Parse(raw, principal string) []types.Segment {
	clean := sectionHeaderRe.ReplaceAllString(raw, "")
	speakerRe := regexp.MustCompile(
		`^(` + regexp.QuoteMeta(principal) + `|` + NarratorName + `)\s*\(([^)]+)\):\s*(.*)$`,
	)

	acc := accumulator{state: stateIdle}
	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := speakerRe.FindStringSubmatch(line); m != nil {
			acc = acc.startSegment(m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3]))
			continue
		}
		acc = acc.continueLine(line)
	}
	return acc.flush().out
}

// ParseOrFallback parses the script and, when no segment is recognizable,
// substitutes a single synthetic narration segment covering the whole text so
// the timeline is never empty. The second return reports whether the fallback
// was used. A fully blank script yields no segments at all; that case is the
// caller's hard failure.
func ParseOrFallback(raw, principal string) ([]types.Segment, bool) {
	if segs := Parse(raw, principal); len(segs) > 0 {
		return segs, false
	}
	text := strings.Join(strings.Fields(sectionHeaderRe.ReplaceAllString(raw, "")), " ")
	if text == "" {
		return nil, false
	}
	return []types.Segment{{
		Speaker: NarratorName,
		Text:    text,
		Emotion: neutralEmotion,
		Order:   0,
	}}, true
}

const (
	titleWeight = 0.08
	endWeight   = 0.05

	// EndSlideText closes every lesson.
	EndSlideText = "Thank you for learning with us!"
)

// ContentWeight maps segment text length to a relative duration weight.
func ContentWeight(text string) float64 {
	return math.Min(float64(len([]rune(text)))/80.0, 0.15)
}

// BuildSlides derives the slide sequence for a segment list: a synthetic
// title slide, one content slide per segment, and a synthetic end slide.
func BuildSlides(segments []types.Segment, principal string) []types.Slide {
	slides := make([]types.Slide, 0, len(segments)+2)
	slides = append(slides, types.Slide{Kind: types.SlideTitle, Weight: titleWeight})
	for _, seg := range segments {
		kind := types.SlideNarrator
		if seg.Speaker == principal {
			kind = types.SlideCharacter
		}
		slides = append(slides, types.Slide{
			Kind:        kind,
			Text:        seg.Text,
			SpeakerName: seg.Speaker,
			Weight:      ContentWeight(seg.Text),
		})
	}
	slides = append(slides, types.Slide{
		Kind:   types.SlideEnd,
		Text:   EndSlideText,
		Weight: endWeight,
	})
	return slides
}
