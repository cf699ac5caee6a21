package overlay

import (
	"strings"
	"testing"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

func makeWindows(texts ...string) []Window {
	out := make([]Window, len(texts))
	start := 0.0
	for i, txt := range texts {
		out[i] = Window{Index: i, Speaker: "Narrator", Text: txt, Start: start, Duration: 5.0}
		start += 5.0
	}
	return out
}

func overlayIndices(sched types.Schedule, kind types.OverlayKind) []int {
	var out []int
	for _, o := range sched.Overlays {
		if o.Kind == kind {
			out = append(out, o.SegmentIndex)
		}
	}
	return out
}

func TestScheduleOverlays_CaptionsClaimFirstMatch(t *testing.T) {
	windows := makeWindows(
		"Machine learning models need data.",
		"Neural networks have many layers.",
	)
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{
			{Trigger: "neural networks", Text: "Brains made of math"},
		},
	}
	sched := ScheduleOverlays(windows, ann)
	if len(sched.Overlays) != 1 {
		t.Fatalf("expected 1 overlay, got %d", len(sched.Overlays))
	}
	o := sched.Overlays[0]
	if o.SegmentIndex != 1 || o.Kind != types.OverlayCaption {
		t.Fatalf("unexpected overlay: %+v", o)
	}
	if o.Text != "BRAINS MADE OF MATH" {
		t.Fatalf("caption text = %q", o.Text)
	}
	if o.Start != 5.0 || o.Duration != 4.0 {
		t.Fatalf("overlay timing = %.1f/%.1f, want 5.0/4.0", o.Start, o.Duration)
	}
}

func TestScheduleOverlays_DurationClampedToSegment(t *testing.T) {
	windows := []Window{{Index: 0, Speaker: "Narrator", Text: "short segment here", Start: 2.0, Duration: 2.5}}
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{{Trigger: "short segment", Text: "c"}},
	}
	sched := ScheduleOverlays(windows, ann)
	if len(sched.Overlays) != 1 || sched.Overlays[0].Duration != 2.5 {
		t.Fatalf("expected duration clamped to 2.5, got %+v", sched.Overlays)
	}
}

func TestScheduleOverlays_EmphasisAvoidsClaimedSegments(t *testing.T) {
	// Captions resolve to segments {0,2,4}; two emphasis points over the
	// remaining {1,3,5} land on {1,3}.
	windows := makeWindows(
		"alpha topic opens the lesson",
		"bravo detail follows",
		"charlie example in the middle",
		"delta detail follows",
		"echo recap comes next",
		"foxtrot closing remark",
	)
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{
			{Trigger: "alpha topic", Text: "one"},
			{Trigger: "charlie example", Text: "two"},
			{Trigger: "echo recap", Text: "three"},
		},
		EmphasisPoints: []types.EmphasisPoint{
			{Type: "definition", Text: "first point"},
			{Type: "key_fact", Text: "second point"},
		},
	}
	sched := ScheduleOverlays(windows, ann)

	caps := overlayIndices(sched, types.OverlayCaption)
	if len(caps) != 3 || caps[0] != 0 || caps[1] != 2 || caps[2] != 4 {
		t.Fatalf("caption indices = %v, want [0 2 4]", caps)
	}
	emps := overlayIndices(sched, types.OverlayEmphasis)
	if len(emps) != 2 || emps[0] != 1 || emps[1] != 3 {
		t.Fatalf("emphasis indices = %v, want [1 3]", emps)
	}
}

func TestScheduleOverlays_NoIndexReuse(t *testing.T) {
	windows := makeWindows(
		"data pipelines move information",
		"caches remember recent answers",
		"queues absorb bursts of work",
	)
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{
			{Trigger: "data pipelines", Text: "a"},
			{Trigger: "caches", Text: "b"},
			{Trigger: "queues", Text: "c"},
		},
		EmphasisPoints: []types.EmphasisPoint{
			{Type: "key_fact", Text: "leftover point"},
		},
	}
	sched := ScheduleOverlays(windows, ann)
	seen := map[int]bool{}
	for _, o := range sched.Overlays {
		if seen[o.SegmentIndex] {
			t.Fatalf("segment index %d reused", o.SegmentIndex)
		}
		seen[o.SegmentIndex] = true
	}
	// All three windows are claimed by captions, so the emphasis point has
	// nowhere to go.
	if len(overlayIndices(sched, types.OverlayEmphasis)) != 0 {
		t.Fatalf("emphasis scheduled with no remaining segments")
	}
}

func TestScheduleOverlays_DuplicateCaptionIdempotent(t *testing.T) {
	windows := makeWindows(
		"water evaporates into the sky",
		"water condenses into clouds",
	)
	dup := types.Caption{Trigger: "water", Text: "H2O"}
	ann := types.AnnotationSet{CaptionPhrases: []types.Caption{dup, dup}}
	sched := ScheduleOverlays(windows, ann)
	if got := overlayIndices(sched, types.OverlayCaption); len(got) != 1 || got[0] != 0 {
		t.Fatalf("duplicate caption scheduled twice: %v", got)
	}
}

func TestScheduleOverlays_UnresolvedCaptionDropped(t *testing.T) {
	windows := makeWindows("water evaporates into the sky")
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{
			{Trigger: "quantum entanglement paradox", Text: "nope"},
		},
	}
	sched := ScheduleOverlays(windows, ann)
	if len(sched.Overlays) != 0 {
		t.Fatalf("unresolvable caption scheduled: %+v", sched.Overlays)
	}
	if len(sched.Warnings) == 0 || !strings.Contains(sched.Warnings[0], "dropped") {
		t.Fatalf("expected drop warning, got %v", sched.Warnings)
	}
}

func TestScheduleOverlays_FuzzyTriggerCorrected(t *testing.T) {
	windows := makeWindows("we analyze a vast array of data points daily")
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{{Trigger: "aray of data", Text: "big data"}},
	}
	sched := ScheduleOverlays(windows, ann)
	if got := overlayIndices(sched, types.OverlayCaption); len(got) != 1 {
		t.Fatalf("typo trigger not scheduled: %+v", sched)
	}
	found := false
	for _, w := range sched.Warnings {
		if strings.Contains(w, "corrected") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected correction warning, got %v", sched.Warnings)
	}
}

func TestScheduleOverlays_FirstWordFallback(t *testing.T) {
	windows := makeWindows("evaporation drives the whole cycle")
	ann := types.AnnotationSet{
		CaptionPhrases: []types.Caption{
			{Trigger: "evaporation basics overview chart legend", Text: "c"},
		},
	}
	sched := ScheduleOverlays(windows, ann)
	if len(overlayIndices(sched, types.OverlayCaption)) != 1 {
		t.Fatalf("first-word fallback did not place caption: %+v", sched)
	}
}

func TestScheduleOverlays_KeywordsPassThrough(t *testing.T) {
	windows := makeWindows("some text")
	ann := types.AnnotationSet{HighlightKeywords: []string{"alpha", "beta"}}
	sched := ScheduleOverlays(windows, ann)
	if len(sched.Keywords) != 2 || sched.Keywords[0] != "alpha" || sched.Keywords[1] != "beta" {
		t.Fatalf("keywords = %v", sched.Keywords)
	}
	if len(sched.Overlays) != 0 {
		t.Fatalf("keywords must not consume segments: %+v", sched.Overlays)
	}
}

func TestScheduleOverlays_EmptyInputs(t *testing.T) {
	if sched := ScheduleOverlays(nil, types.AnnotationSet{}); len(sched.Overlays) != 0 {
		t.Fatalf("expected empty schedule")
	}
	windows := makeWindows("text")
	ann := types.AnnotationSet{EmphasisPoints: []types.EmphasisPoint{{Type: "key_fact", Text: "p"}}}
	sched := ScheduleOverlays(windows, ann)
	if len(sched.Overlays) != 1 || sched.Overlays[0].Kind != types.OverlayEmphasis {
		t.Fatalf("single emphasis over single window: %+v", sched.Overlays)
	}
}
