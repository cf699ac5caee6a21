// Package pipeline is the multi-lesson driver: it loads a lesson plan, runs
// the synchronization engine once per lesson through the external
// collaborators, and writes per-lesson artifacts. One lesson failing never
// blocks its siblings.
package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/Kishore121523/AI-content-factory/internal/ports"
	"github.com/Kishore121523/AI-content-factory/internal/ports/adapters/openaigen"
	"github.com/Kishore121523/AI-content-factory/internal/ports/adapters/speechsvc"
	"github.com/Kishore121523/AI-content-factory/internal/render"
	"github.com/Kishore121523/AI-content-factory/internal/types"
	"github.com/Kishore121523/AI-content-factory/internal/usecase"
)

type Config struct {
	PlanPath string
	OutDir   string
	Logf     func(format string, args ...any)

	// FallbackDuration is the assumed narration length when no speech
	// service is configured and durations must be estimated.
	FallbackDuration float64

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// SpeechBaseURL is optional; when empty the timeline is built in
	// estimated mode.
	SpeechBaseURL string
}

func (c Config) Validate() error {
	if c.PlanPath == "" {
		return errors.New("lesson plan path is empty")
	}
	if _, err := os.Stat(c.PlanPath); err != nil {
		return fmt.Errorf("stat lesson plan: %w", err)
	}
	if c.OpenAIAPIKey == "" {
		return errors.New("openai api key is required")
	}
	if c.SpeechBaseURL == "" && c.FallbackDuration <= 0 {
		return errors.New("fallback duration must be > 0 when no speech service is configured")
	}
	return nil
}

// Deps carries the collaborator implementations. Zero-value fields are
// filled from Config by Run; tests inject fakes.
type Deps struct {
	Script   ports.ScriptGenerator
	Narrator ports.NarrationSynthesizer
}

func Run(ctx context.Context, cfg Config) error {
	deps := Deps{}
	gen, err := openaigen.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	if err != nil {
		return fmt.Errorf("script generator: %w", err)
	}
	deps.Script = gen
	if cfg.SpeechBaseURL != "" {
		narr, err := speechsvc.New(cfg.SpeechBaseURL)
		if err != nil {
			return fmt.Errorf("speech service: %w", err)
		}
		deps.Narrator = narr
	}
	return RunWith(ctx, cfg, deps)
}

// RunWith drives the plan with explicit collaborators.
func RunWith(ctx context.Context, cfg Config, deps Deps) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	plan, err := LoadPlan(cfg.PlanPath)
	if err != nil {
		return err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runDir := buildRunDir(outDir, plan.Name, time.Now().UTC())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}
	logf("run dir: %s", runDir)

	assets := render.NewAssetCache()
	defer assets.Clear()

	failures := 0
	for i, lesson := range plan.Lessons {
		jobID := uuid.NewString()
		logf("lesson %d/%d %q (job %s)", i+1, len(plan.Lessons), lesson.Title, jobID)
		if err := runLesson(ctx, cfg, deps, plan.Character, lesson, runDir, assets, logf); err != nil {
			// Failure isolation is at lesson granularity.
			failures++
			logf("lesson %q failed: %v; continuing with remaining lessons", lesson.Title, err)
		}
	}
	if failures == len(plan.Lessons) {
		return fmt.Errorf("all %d lessons failed", failures)
	}
	logf("done: %d/%d lessons produced", len(plan.Lessons)-failures, len(plan.Lessons))
	return nil
}

func runLesson(
	ctx context.Context,
	cfg Config,
	deps Deps,
	character types.Character,
	lesson types.Lesson,
	runDir string,
	assets *render.AssetCache,
	logf func(string, ...any),
) error {
	lessonDir := filepath.Join(runDir, normalizePathSegment(lesson.Title))
	if err := os.MkdirAll(lessonDir, 0o755); err != nil {
		return err
	}

	draft, err := deps.Script.GenerateScript(ctx, character, lesson)
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}

	var measured []types.TimingEntry
	total := cfg.FallbackDuration
	if deps.Narrator != nil {
		nr, err := deps.Narrator.Synthesize(ctx, character, lesson.Title, draft.Script, lessonDir)
		if err != nil {
			// Narration is an enhancement; estimated mode still yields
			// a complete timeline.
			logf("narration unavailable for %q: %v; estimating timings", lesson.Title, err)
		} else {
			measured = nr.Timing
			total = nr.TotalDuration
		}
	}

	res, err := usecase.Run(usecase.Input{
		Script:         draft.Script,
		Principal:      character.Name,
		Measured:       measured,
		TotalDuration:  total,
		AnnotationsRaw: draft.AnnotationsRaw,
		Logf:           logf,
	})
	if err != nil {
		return err
	}

	return writeArtifacts(lessonDir, lesson, res, assets)
}

type timelineArtifact struct {
	Lesson   string               `json:"lesson"`
	Slides   []types.Slide        `json:"slides"`
	Timings  []types.SlideTiming  `json:"timings"`
	Segments []types.Segment      `json:"segments"`
	Layouts  []render.SlideLayout `json:"layouts"`
}

func writeArtifacts(dir string, lesson types.Lesson, res usecase.Result, assets *render.AssetCache) error {
	layouts := make([]render.SlideLayout, 0, len(res.Slides))
	for _, s := range res.Slides {
		layouts = append(layouts, assets.Layout(s))
	}

	art := timelineArtifact{
		Lesson:   lesson.Title,
		Slides:   res.Slides,
		Timings:  res.Timeline,
		Segments: res.Segments,
		Layouts:  layouts,
	}
	if err := writeJSON(filepath.Join(dir, "timeline.json"), art); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, "overlays.json"), res.Schedule); err != nil {
		return err
	}

	report := strings.Join(res.Report, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "qa_report.txt"), []byte(report), 0o644); err != nil {
		return err
	}
	html, err := reportHTML(lesson.Title, res.Report)
	if err != nil {
		return fmt.Errorf("render QA report: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "qa_report.html"), html, 0o644)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, b, 0o644)
}

// reportHTML renders the QA lines as a markdown list converted to HTML, so
// the report can be dropped into a review dashboard as-is.
func reportHTML(title string, lines []string) ([]byte, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# QA report: %s\n\n", title)
	for _, l := range lines {
		fmt.Fprintf(&md, "- %s\n", l)
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildRunDir(outRoot, planName string, now time.Time) string {
	name := normalizePathSegment(planName)
	if name == "" {
		name = "plan"
	}
	ts := now.UTC().Format("20060102-150405Z")
	seed := fmt.Sprintf("%s|%d", planName, now.UTC().UnixNano())
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, hash(seed)[:6]))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}
