package overlay

import (
	"fmt"
	"strings"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// maxOverlayDuration caps how long any single overlay stays on screen.
const maxOverlayDuration = 4.0

// Window is one non-terminal timeline segment offered to the scheduler.
type Window struct {
	Index    int
	Speaker  string
	Text     string
	Start    float64
	Duration float64
}

// ScheduleOverlays places captions and emphasis points onto windows so that
// no window index is reused across overlays of any kind. Captions claim
// windows first; emphasis points are strided over whatever remains; keywords
// pass through untouched. The two passes never revisit claimed indices, which
// makes collisions structurally impossible rather than merely detected.
func ScheduleOverlays(windows []Window, ann types.AnnotationSet) types.Schedule {
	sched := types.Schedule{
		Keywords: append([]string(nil), ann.HighlightKeywords...),
	}

	used := make(map[int]bool, len(windows))
	seen := make(map[[2]string]bool, len(ann.CaptionPhrases))

	for _, c := range ann.CaptionPhrases {
		trig := strings.TrimSpace(c.Trigger)
		if trig == "" {
			sched.Warnings = append(sched.Warnings,
				fmt.Sprintf("caption %q dropped: empty trigger", c.Text))
			continue
		}
		// Idempotent against duplicate annotations.
		id := [2]string{strings.ToLower(c.Text), strings.ToLower(trig)}
		if seen[id] {
			continue
		}

		placed := false
		for _, w := range windows {
			if used[w.Index] {
				continue
			}
			res, ok := matchWindow(trig, w)
			if !ok {
				continue
			}
			sched.Overlays = append(sched.Overlays, types.ScheduledOverlay{
				SegmentIndex: w.Index,
				Kind:         types.OverlayCaption,
				Text:         strings.ToUpper(strings.TrimSpace(c.Text)),
				Start:        w.Start,
				Duration:     overlayDuration(w),
			})
			used[w.Index] = true
			seen[id] = true
			placed = true
			if res.Corrected {
				sched.Warnings = append(sched.Warnings,
					fmt.Sprintf("caption trigger %q corrected to %q (ratio %.2f)", trig, res.Trigger, res.Ratio))
			}
			break
		}
		if !placed {
			sched.Warnings = append(sched.Warnings,
				fmt.Sprintf("caption %q dropped: trigger %q not found in any segment", c.Text, trig))
		}
	}

	remaining := make([]Window, 0, len(windows))
	for _, w := range windows {
		if !used[w.Index] {
			remaining = append(remaining, w)
		}
	}

	n := len(ann.EmphasisPoints)
	if len(remaining) < n {
		n = len(remaining)
	}
	if n > 0 {
		step := len(remaining) / n
		if step < 1 {
			step = 1
		}
		for j := 0; j < n; j++ {
			idx := j * step
			if idx >= len(remaining) {
				break
			}
			w := remaining[idx]
			sched.Overlays = append(sched.Overlays, types.ScheduledOverlay{
				SegmentIndex: w.Index,
				Kind:         types.OverlayEmphasis,
				Text:         strings.ToUpper(strings.TrimSpace(ann.EmphasisPoints[j].Text)),
				Start:        w.Start,
				Duration:     overlayDuration(w),
			})
			used[w.Index] = true
		}
	}

	return sched
}

// matchWindow decides whether a caption belongs on a window. The resolver
// runs first (exact, then fuzzy-corrected); the whitespace-collapsed form,
// the speaker name, and the trigger's first word remain as weak fallbacks.
func matchWindow(trig string, w Window) (Resolution, bool) {
	if res, ok := ResolveTrigger(trig, w.Text); ok {
		return res, true
	}

	lowTrig := strings.ToLower(trig)
	lowText := strings.ToLower(w.Text)
	if collapsed := collapse(lowTrig); collapsed != "" && strings.Contains(collapse(lowText), collapsed) {
		return Resolution{Trigger: trig, Ratio: 1}, true
	}
	if strings.Contains(strings.ToLower(w.Speaker), lowTrig) {
		return Resolution{Trigger: trig, Ratio: 1}, true
	}
	if fields := strings.Fields(lowTrig); len(fields) > 0 && strings.Contains(lowText, fields[0]) {
		return Resolution{Trigger: trig, Ratio: 1}, true
	}
	return Resolution{}, false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func overlayDuration(w Window) float64 {
	if w.Duration < maxOverlayDuration {
		return w.Duration
	}
	return maxOverlayDuration
}
