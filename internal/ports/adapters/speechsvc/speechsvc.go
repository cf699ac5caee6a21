// Package speechsvc talks to the narration-synthesis service. The service
// returns synthesized audio plus per-segment timing, which the engine treats
// as authoritative when present.
package speechsvc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kishore121523/AI-content-factory/internal/ports"
	"github.com/Kishore121523/AI-content-factory/internal/types"
)

const requestTimeout = 5 * time.Minute

type Adapter struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) (*Adapter, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}
	return &Adapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}, nil
}

func validateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("speech service base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid speech service URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid speech service URL %q: absolute URL with host is required", baseURL)
	}
	return nil
}

type synthesizeRequest struct {
	CharacterName string `json:"character_name"`
	VoiceStyle    string `json:"voice_style"`
	Gender        string `json:"gender"`
	LessonTitle   string `json:"lesson_title"`
	Script        string `json:"script"`
}

type synthesizeResponse struct {
	AudioB64      string              `json:"audio_b64"`
	Timing        []types.TimingEntry `json:"timing"`
	TotalDuration float64             `json:"total_duration"`
}

func (a *Adapter) Synthesize(ctx context.Context, character types.Character, lessonTitle, script, outDir string) (ports.NarrationResult, error) {
	body, err := json.Marshal(synthesizeRequest{
		CharacterName: character.Name,
		VoiceStyle:    character.VoiceStyle,
		Gender:        character.Gender,
		LessonTitle:   lessonTitle,
		Script:        script,
	})
	if err != nil {
		return ports.NarrationResult{}, fmt.Errorf("marshal synthesize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return ports.NarrationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return ports.NarrationResult{}, fmt.Errorf("speech service request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return ports.NarrationResult{}, fmt.Errorf("read speech service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.NarrationResult{}, fmt.Errorf("speech service status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var sr synthesizeResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return ports.NarrationResult{}, fmt.Errorf("decode speech service response: %w", err)
	}
	if sr.TotalDuration <= 0 {
		return ports.NarrationResult{}, fmt.Errorf("speech service returned non-positive total duration %.2f", sr.TotalDuration)
	}

	audioPath, err := writeAudio(sr.AudioB64, outDir)
	if err != nil {
		return ports.NarrationResult{}, err
	}

	return ports.NarrationResult{
		AudioPath:     audioPath,
		Timing:        normalizeTiming(sr.Timing),
		TotalDuration: sr.TotalDuration,
	}, nil
}

// normalizeTiming drops entries with non-positive duration and re-derives End
// so the End == Start+Duration invariant holds regardless of what the service
// reported.
func normalizeTiming(entries []types.TimingEntry) []types.TimingEntry {
	out := make([]types.TimingEntry, 0, len(entries))
	for _, e := range entries {
		if e.Duration <= 0 || e.Start < 0 {
			continue
		}
		if math.Abs(e.End-(e.Start+e.Duration)) > 1e-9 {
			e.End = e.Start + e.Duration
		}
		out = append(out, e)
	}
	return out
}

func writeAudio(audioB64, outDir string) (string, error) {
	if audioB64 == "" {
		return "", nil
	}
	audio, err := base64.StdEncoding.DecodeString(audioB64)
	if err != nil {
		return "", fmt.Errorf("decode audio payload: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "narration.mp3")
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
