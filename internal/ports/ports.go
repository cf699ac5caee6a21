// Package ports declares the interfaces the pipeline needs from external
// collaborators. Adapters live under ports/adapters.
package ports

import (
	"context"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// LessonDraft is the untrusted output of the script-generation collaborator:
// the annotated script text plus the raw overlay annotation JSON. Both always
// pass the defaulting boundaries before use.
type LessonDraft struct {
	Script         string
	AnnotationsRaw []byte
}

type ScriptGenerator interface {
	GenerateScript(ctx context.Context, character types.Character, lesson types.Lesson) (LessonDraft, error)
}

// NarrationResult carries the synthesized audio artifact and the measured
// per-segment timing, which is treated as authoritative when present.
type NarrationResult struct {
	AudioPath     string
	Timing        []types.TimingEntry
	TotalDuration float64
}

type NarrationSynthesizer interface {
	Synthesize(ctx context.Context, character types.Character, lessonTitle, script, outDir string) (NarrationResult, error)
}
