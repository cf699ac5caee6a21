package types

// Segment is one contiguous span of spoken text attributed to one speaker.
// Order is the sole ordering key for everything downstream.
type Segment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
	Order   int    `json:"order"`
}

type SlideKind string

const (
	SlideTitle     SlideKind = "title"
	SlideCharacter SlideKind = "character"
	SlideNarrator  SlideKind = "narrator"
	SlideEnd       SlideKind = "end"
)

// Slide is one visual unit of the presentation timeline. Content slides are
// derived 1:1 from Segments; Title/End slides are synthetic.
type Slide struct {
	Kind        SlideKind `json:"kind"`
	Text        string    `json:"text"`
	SpeakerName string    `json:"speaker_name"`
	Weight      float64   `json:"weight"`
}

// TimingEntry is one measured narration span, as reported by the narration
// collaborator. End is always Start+Duration.
type TimingEntry struct {
	Speaker  string  `json:"speaker"`
	Text     string  `json:"text"`
	Emotion  string  `json:"emotion"`
	Start    float64 `json:"start_time"`
	Duration float64 `json:"duration"`
	End      float64 `json:"end_time"`
}

// SlideTiming is the computed start/duration for one slide.
type SlideTiming struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Caption is an overlay anchored to a trigger phrase in the spoken text.
type Caption struct {
	Trigger string `json:"trigger"`
	Text    string `json:"text"`
}

// EmphasisPoint is a displayed callout positioned structurally rather than
// by trigger. Type is "definition" or "key_fact".
type EmphasisPoint struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnnotationSet is the upstream overlay annotation draft. It is untrusted:
// missing fields default to empty lists at the parse boundary.
type AnnotationSet struct {
	HighlightKeywords []string        `json:"highlight_keywords"`
	CaptionPhrases    []Caption       `json:"caption_phrases"`
	EmphasisPoints    []EmphasisPoint `json:"emphasis_points"`
}

type OverlayKind string

const (
	OverlayCaption  OverlayKind = "caption"
	OverlayEmphasis OverlayKind = "emphasis"
)

// ScheduledOverlay is one overlay bound to a content segment. SegmentIndex
// indexes the content-segment sequence (title/end slides excluded) and is
// unique across the whole schedule.
type ScheduledOverlay struct {
	SegmentIndex int         `json:"segment_index"`
	Kind         OverlayKind `json:"kind"`
	Text         string      `json:"text"`
	Start        float64     `json:"start"`
	Duration     float64     `json:"duration"`
}

// Schedule is the full overlay placement for one lesson. Keywords are passed
// through untouched as a rendering-time text-highlight hint; they never claim
// a segment.
type Schedule struct {
	Overlays []ScheduledOverlay `json:"overlays"`
	Keywords []string           `json:"highlight_keywords"`
	Warnings []string           `json:"warnings,omitempty"`
}

// Character is the principal speaker of a lesson plan.
type Character struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	VoiceStyle  string `json:"voice_style" yaml:"voice_style"`
	Gender      string `json:"gender" yaml:"gender"`
	AvatarID    int    `json:"avatar_id" yaml:"avatar_id"`
}

// Lesson is one unit of the lesson plan consumed by the multi-lesson driver.
type Lesson struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
}
