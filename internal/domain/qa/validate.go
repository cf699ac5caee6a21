// Package qa runs post-scheduling consistency checks. It is purely
// diagnostic: it never mutates the pipeline output and reports findings as
// human-readable lines instead of errors.
package qa

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

const (
	// overlapMargin is the slack allowed before two timing spans count as
	// overlapping.
	overlapMargin = 0.1

	// gapThreshold flags silent stretches between consecutive segments.
	gapThreshold = 4.0

	// wordCeiling is the readability limit for a single segment.
	wordCeiling = 55

	// countTolerance is how far slide and timing counts may diverge before
	// orphans are reported.
	countTolerance = 2

	// internalDefectPrefix marks findings that indicate a bug in this
	// engine rather than bad upstream input.
	internalDefectPrefix = "internal-defect: "
)

var spaceRe = regexp.MustCompile(`\s+`)

func normalize(s string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// Input is everything the validator inspects for one lesson.
type Input struct {
	Script      string
	Slides      []types.Slide
	Timing      []types.TimingEntry
	Annotations types.AnnotationSet
	Schedule    types.Schedule
}

// Report runs every check and returns the ordered diagnostic lines, warnings
// and confirmations alike. It is always safe to call; an all-empty input
// simply reports that there was nothing to check.
func Report(in Input) []string {
	var lines []string
	log := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	checkTiming(in.Timing, log)
	checkSlideAlignment(in.Slides, in.Timing, log)
	checkAnnotations(in.Script, in.Annotations, log)
	checkScheduleCollisions(in.Schedule, log)
	return lines
}

// checkTiming flags overlaps, large gaps, over-long segments, and empty
// segment text in the measured timing sequence.
func checkTiming(timing []types.TimingEntry, log func(string, ...any)) {
	if len(timing) == 0 {
		log("no timing data to check")
		return
	}
	log("timing segments: %d", len(timing))

	lastEnd := 0.0
	for i, seg := range timing {
		if seg.Start < lastEnd-overlapMargin {
			log("warning: segment %d overlaps previous (start=%.2f, prev_end=%.2f)", i+1, seg.Start, lastEnd)
		}
		if seg.Start-lastEnd > gapThreshold {
			log("warning: segment %d gap exceeds %.0fs (start=%.2f, prev_end=%.2f)", i+1, gapThreshold, seg.Start, lastEnd)
		}
		words := len(strings.Fields(seg.Text))
		if words > wordCeiling {
			log("warning: segment %d too long (%d words): %q", i+1, words, truncate(seg.Text, 50))
		}
		if strings.TrimSpace(seg.Text) == "" {
			log("warning: segment %d is empty", i+1)
		}
		lastEnd = seg.End
		if lastEnd == 0 {
			lastEnd = seg.Start
		}
	}
}

// checkSlideAlignment diffs content-slide speakers against measured-timing
// speakers and reports orphans once the divergence passes the tolerance.
func checkSlideAlignment(slides []types.Slide, timing []types.TimingEntry, log func(string, ...any)) {
	if len(slides) == 0 {
		log("no slides to check")
		return
	}

	var slideSpeakers []string
	for _, s := range slides {
		if s.Kind == types.SlideTitle || s.Kind == types.SlideEnd {
			continue
		}
		if name := strings.TrimSpace(s.SpeakerName); name != "" {
			slideSpeakers = append(slideSpeakers, name)
		}
	}
	var segSpeakers []string
	for _, seg := range timing {
		name := strings.TrimSpace(seg.Speaker)
		if name == "" || strings.EqualFold(name, "end") {
			continue
		}
		segSpeakers = append(segSpeakers, name)
	}

	diff := len(slideSpeakers) - len(segSpeakers)
	if diff < 0 {
		diff = -diff
	}
	if diff > countTolerance {
		log("warning: slide count (%d) and timing segment count (%d) diverge", len(slideSpeakers), len(segSpeakers))
		if len(slideSpeakers) > len(segSpeakers) {
			orphaned := slideSpeakers[len(segSpeakers):]
			log("warning: %d slides without timing data: %v", len(orphaned), orphaned)
		} else {
			orphaned := segSpeakers[len(slideSpeakers):]
			log("warning: %d timing segments without slides: %v", len(orphaned), orphaned)
		}
	}

	mismatched := false
	for i := 0; i < len(slideSpeakers) && i < len(segSpeakers); i++ {
		if normalize(slideSpeakers[i]) != normalize(segSpeakers[i]) {
			mismatched = true
			log("warning: slide/speaker mismatch at %d: slide=%q vs timing=%q", i+1, slideSpeakers[i], segSpeakers[i])
		}
	}
	if !mismatched && len(segSpeakers) > 0 {
		log("slide/speaker alignment looks OK")
	}
}

// checkAnnotations verifies caption triggers and highlight keywords against
// the literal script text. A trigger absent post-resolution signals a
// resolver defect upstream of QA, but is still reported as an input warning
// because garbled annotation drafts produce the same symptom.
func checkAnnotations(script string, ann types.AnnotationSet, log func(string, ...any)) {
	if len(ann.CaptionPhrases) == 0 && len(ann.HighlightKeywords) == 0 && len(ann.EmphasisPoints) == 0 {
		log("no overlay annotations to check")
		return
	}
	scriptLower := strings.ToLower(script)

	missing := 0
	for _, c := range ann.CaptionPhrases {
		trig := strings.ToLower(strings.TrimSpace(c.Trigger))
		if trig == "" || !strings.Contains(scriptLower, trig) {
			missing++
			log("warning: caption trigger not found in script: %q (caption %q)", c.Trigger, c.Text)
		}
	}
	if missing == 0 && len(ann.CaptionPhrases) > 0 {
		log("all caption triggers found in script")
	}

	var notFound []string
	for _, kw := range ann.HighlightKeywords {
		if !strings.Contains(scriptLower, normalize(kw)) {
			notFound = append(notFound, kw)
		}
	}
	if len(notFound) > 0 {
		log("warning: highlight keywords not found in script: %v", notFound)
	} else if len(ann.HighlightKeywords) > 0 {
		log("all highlight keywords found in script")
	}

	log("%d highlight keywords, %d captions, %d emphasis points",
		len(ann.HighlightKeywords), len(ann.CaptionPhrases), len(ann.EmphasisPoints))
}

// checkScheduleCollisions looks for scheduled overlays with overlapping time
// intervals. The scheduler makes this structurally impossible, so any hit is
// reported as an internal defect, not a user-input warning.
func checkScheduleCollisions(sched types.Schedule, log func(string, ...any)) {
	collided := false
	for i := 0; i < len(sched.Overlays); i++ {
		for j := i + 1; j < len(sched.Overlays); j++ {
			a, b := sched.Overlays[i], sched.Overlays[j]
			if intervalsOverlap(a.Start, a.Start+a.Duration, b.Start, b.Start+b.Duration) {
				collided = true
				log(internalDefectPrefix+"overlay collision: %s %q and %s %q overlap (%.2f-%.2fs)",
					a.Kind, truncate(a.Text, 25), b.Kind, truncate(b.Text, 25), a.Start, a.Start+a.Duration)
			}
			if a.SegmentIndex == b.SegmentIndex {
				collided = true
				log(internalDefectPrefix+"segment index %d claimed twice", a.SegmentIndex)
			}
		}
	}
	if !collided && len(sched.Overlays) > 0 {
		log("overlays occupy unique segments; no overlap possible by construction")
	}
}

func intervalsOverlap(start1, end1, start2, end2 float64) bool {
	lo := start1
	if start2 > lo {
		lo = start2
	}
	hi := end1
	if end2 < hi {
		hi = end2
	}
	return lo < hi-overlapMargin
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// IsInternalDefect reports whether a diagnostic line signals an engine bug
// rather than bad upstream input.
func IsInternalDefect(line string) bool {
	return strings.HasPrefix(line, internalDefectPrefix)
}
