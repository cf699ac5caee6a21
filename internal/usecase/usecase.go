// Package usecase wires the synchronization stages for one lesson:
// segmentation, timeline building, overlay scheduling, and the consistency
// report. Every stage is a pure, finite computation over already-available
// data; there is nothing to cancel or unwind.
package usecase

import (
	"errors"
	"fmt"

	"github.com/Kishore121523/AI-content-factory/internal/domain/overlay"
	"github.com/Kishore121523/AI-content-factory/internal/domain/qa"
	"github.com/Kishore121523/AI-content-factory/internal/domain/script"
	"github.com/Kishore121523/AI-content-factory/internal/domain/timeline"
	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// ErrEmptyScript is the only hard failure: a script with no usable text even
// after fallback recovery. The caller skips or retries that single lesson.
var ErrEmptyScript = errors.New("script produced no segments")

type Input struct {
	Script    string
	Principal string

	// Measured selects measured mode when non-empty; otherwise durations
	// are estimated from slide weights.
	Measured      []types.TimingEntry
	TotalDuration float64

	// AnnotationsRaw is the untrusted overlay annotation draft.
	AnnotationsRaw []byte

	Logf func(format string, args ...any)
}

type Result struct {
	Segments []types.Segment
	Slides   []types.Slide
	Timeline []types.SlideTiming
	Schedule types.Schedule
	Report   []string

	// UsedFallback reports that the script had no recognizable speaker
	// markers and a single synthetic narration segment was substituted.
	UsedFallback bool

	AnnotationOutcome overlay.ParseOutcome
}

// Run executes the fixed stage order. Stage order matters: mode selection and
// first-match-wins scheduling are both order-dependent.
func Run(in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if in.TotalDuration <= 0 {
		return Result{}, fmt.Errorf("total duration must be positive, got %.2f", in.TotalDuration)
	}

	segments, usedFallback := script.ParseOrFallback(in.Script, in.Principal)
	if len(segments) == 0 {
		return Result{}, ErrEmptyScript
	}
	if usedFallback {
		logf("script had no recognizable segments; using whole-text narration fallback")
	}

	slides := script.BuildSlides(segments, in.Principal)
	timings := timeline.Build(slides, in.Measured, in.TotalDuration)

	ann, outcome := overlay.ParseAnnotations(in.AnnotationsRaw)
	if outcome == overlay.ParseMalformed {
		logf("overlay annotation draft unparseable; defaulting to empty set")
	}

	sched := overlay.ScheduleOverlays(contentWindows(segments, timings), ann)
	for _, w := range sched.Warnings {
		logf("overlay: %s", w)
	}

	report := qa.Report(qa.Input{
		Script:      in.Script,
		Slides:      slides,
		Timing:      in.Measured,
		Annotations: ann,
		Schedule:    sched,
	})

	return Result{
		Segments:          segments,
		Slides:            slides,
		Timeline:          timings,
		Schedule:          sched,
		Report:            report,
		UsedFallback:      usedFallback,
		AnnotationOutcome: outcome,
	}, nil
}

// contentWindows zips segments with their slide timings, skipping the
// synthetic title/end slides; the segment list is 1:1 with content slides.
func contentWindows(segments []types.Segment, timings []types.SlideTiming) []overlay.Window {
	windows := make([]overlay.Window, 0, len(segments))
	for i, seg := range segments {
		ti := i + 1 // offset past the title slide
		if ti >= len(timings)-1 {
			break
		}
		windows = append(windows, overlay.Window{
			Index:    i,
			Speaker:  seg.Speaker,
			Text:     seg.Text,
			Start:    timings[ti].Start,
			Duration: timings[ti].Duration,
		})
	}
	return windows
}
