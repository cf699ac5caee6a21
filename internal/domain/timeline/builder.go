// Package timeline assigns start/duration to every slide, either from
// measured narration timing or from estimated per-type weights.
package timeline

import (
	"github.com/Kishore121523/AI-content-factory/internal/domain/script"
	"github.com/Kishore121523/AI-content-factory/internal/types"
)

const (
	// Epsilon is the floating-point tolerance for timeline totals.
	Epsilon = 0.01

	// PaddingDuration trails every measured segment so the rendered slide
	// fully covers playback.
	PaddingDuration = 0.7

	// DefaultSlideDuration covers slides left unconsumed after measured
	// entries run out.
	DefaultSlideDuration = 3.5

	TitleSlideDuration = 3.0

	minEndSlideDuration = 0.5

	// absoluteFloor is the shortest any slide may become after scaling.
	absoluteFloor = 2.0
)

var minDurations = map[types.SlideKind]float64{
	types.SlideTitle:     3.0,
	types.SlideEnd:       2.5,
	types.SlideCharacter: 2.0,
	types.SlideNarrator:  2.0,
}

// Build computes one SlideTiming per slide. Measured mode is selected by the
// presence of measured narration timing; otherwise durations are estimated
// from slide weights. Both modes end with the shared adjustment step, so the
// result covers [0, total] as a gapless prefix sum.
func Build(slides []types.Slide, measured []types.TimingEntry, total float64) []types.SlideTiming {
	if len(slides) == 0 {
		return nil
	}
	var timings []types.SlideTiming
	if len(measured) > 0 {
		timings = buildMeasured(slides, measured, total)
	} else {
		timings = buildEstimated(slides, total)
	}
	adjust(timings, total)
	return timings
}

// buildMeasured walks slides and measured entries in parallel order. A slide
// advances only on a speaker match; non-matching entries are consumed without
// binding, which tolerates extra or garbled entries from the narration
// collaborator.
func buildMeasured(slides []types.Slide, measured []types.TimingEntry, total float64) []types.SlideTiming {
	voice := make([]types.TimingEntry, 0, len(measured))
	for _, e := range measured {
		// The narration service appends a synthetic "end" entry; it is not
		// a spoken segment.
		if e.Speaker == "end" {
			continue
		}
		voice = append(voice, e)
	}

	timings := make([]types.SlideTiming, 0, len(slides))
	timings = append(timings, types.SlideTiming{Start: 0, Duration: TitleSlideDuration})

	slideIdx, voiceIdx := 1, 0
	for slideIdx < len(slides)-1 && voiceIdx < len(voice) {
		slide := slides[slideIdx]
		entry := voice[voiceIdx]
		if speakerMatches(slide, entry.Speaker) {
			timings = append(timings, types.SlideTiming{
				Start:    entry.Start,
				Duration: entry.Duration + PaddingDuration,
			})
			slideIdx++
		}
		voiceIdx++
	}

	// Slides left unconsumed chain after the prior slide's end.
	for slideIdx < len(slides)-1 {
		prev := timings[len(timings)-1]
		timings = append(timings, types.SlideTiming{
			Start:    prev.Start + prev.Duration,
			Duration: DefaultSlideDuration,
		})
		slideIdx++
	}

	last := timings[len(timings)-1]
	contentEnd := last.Start + last.Duration
	endDur := total - contentEnd
	if endDur < minEndSlideDuration {
		endDur = minEndSlideDuration
	}
	timings = append(timings, types.SlideTiming{Start: contentEnd, Duration: endDur})
	return timings
}

func speakerMatches(slide types.Slide, speaker string) bool {
	switch slide.Kind {
	case types.SlideCharacter:
		return speaker == slide.SpeakerName
	case types.SlideNarrator:
		return speaker == script.NarratorName
	default:
		return false
	}
}

// buildEstimated distributes total duration proportionally to slide weights,
// clamped to per-kind minimums.
func buildEstimated(slides []types.Slide, total float64) []types.SlideTiming {
	totalWeight := 0.0
	for _, s := range slides {
		totalWeight += s.Weight
	}

	timings := make([]types.SlideTiming, 0, len(slides))
	current := 0.0
	for _, s := range slides {
		var dur float64
		if totalWeight > 0 {
			dur = (s.Weight / totalWeight) * total
		} else {
			dur = total / float64(len(slides))
		}
		min, ok := minDurations[s.Kind]
		if !ok {
			min = absoluteFloor
		}
		if dur < min {
			dur = min
		}
		timings = append(timings, types.SlideTiming{Start: current, Duration: dur})
		current += dur
	}
	return timings
}

// adjust enforces the timeline invariants: when the clamped sum exceeds
// total, every duration is scaled down once by a single uniform factor (each
// still respecting the absolute floor), starts are recomputed as a prefix
// sum, and the final slide is set to land exactly on total.
func adjust(timings []types.SlideTiming, total float64) {
	if len(timings) == 0 {
		return
	}

	sum := 0.0
	for _, t := range timings {
		sum += t.Duration
	}
	if sum > total {
		scale := total / sum
		for i := range timings {
			d := timings[i].Duration * scale
			if d < absoluteFloor {
				d = absoluteFloor
			}
			timings[i].Duration = d
		}
	}

	current := 0.0
	for i := range timings {
		timings[i].Start = current
		current += timings[i].Duration
	}

	last := &timings[len(timings)-1]
	if d := total - last.Start; d > 0 {
		last.Duration = d
	}
}

// Total reports the covered duration of a computed timeline.
func Total(timings []types.SlideTiming) float64 {
	sum := 0.0
	for _, t := range timings {
		sum += t.Duration
	}
	return sum
}
