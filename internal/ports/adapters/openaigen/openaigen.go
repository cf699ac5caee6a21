// Package openaigen generates lesson scripts and overlay annotation drafts
// through the OpenAI chat completions API. Its output is untrusted by
// contract: the engine's parse boundaries absorb anything malformed.
package openaigen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Kishore121523/AI-content-factory/internal/ports"
	"github.com/Kishore121523/AI-content-factory/internal/types"
)

const defaultModel = "gpt-4o-mini"

type Adapter struct {
	model string
	opts  []option.RequestOption
}

func New(apiKey, model, baseURL string) (*Adapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Adapter{model: model, opts: opts}, nil
}

func (a *Adapter) GenerateScript(ctx context.Context, character types.Character, lesson types.Lesson) (ports.LessonDraft, error) {
	script, err := a.complete(ctx, scriptSystemPrompt(character), scriptUserPrompt(character, lesson))
	if err != nil {
		return ports.LessonDraft{}, fmt.Errorf("generate script: %w", err)
	}

	annotations, err := a.complete(ctx, annotationSystemPrompt(), annotationUserPrompt(script))
	if err != nil {
		// Script text alone is enough to build a timeline; overlays
		// default to empty downstream.
		return ports.LessonDraft{Script: script}, nil
	}
	return ports.LessonDraft{Script: script, AnnotationsRaw: []byte(annotations)}, nil
}

func (a *Adapter) complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(a.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai: empty completion")
	}
	return content, nil
}

func scriptSystemPrompt(character types.Character) string {
	var b strings.Builder
	b.WriteString("You are a scriptwriter creating educational video dialogues with dynamic emotions. ")
	b.WriteString("Generate a fun, engaging 300-400 word script for a character teaching a lesson topic.\n\n")
	b.WriteString("FORMAT EVERY CONTENT LINE EXACTLY LIKE THIS:\n")
	fmt.Fprintf(&b, "%s (enthusiastic): Opening hook that grabs attention!\n", character.Name)
	b.WriteString("Narrator (informative): Explanation of the concept...\n\n")
	fmt.Fprintf(&b, "Use only %s and Narrator as speakers; every line carries an emotion in parentheses; ", character.Name)
	b.WriteString("no segment exceeds 50 words. You may structure the script with the section headers ")
	b.WriteString("Introduction:, Body:, and Summary:.")
	return b.String()
}

func scriptUserPrompt(character types.Character, lesson types.Lesson) string {
	return fmt.Sprintf(
		"Character Name: %s\nCharacter Style: %s\nLesson Title: %s\nLesson Summary: %s\n\nGenerate the script.",
		character.Name, character.VoiceStyle, lesson.Title, lesson.Summary,
	)
}

func annotationSystemPrompt() string {
	return "You annotate educational scripts for on-screen overlays. Respond with a single JSON object " +
		`of the shape {"highlight_keywords": [string], "caption_phrases": [{"trigger": string, "text": string}], ` +
		`"emphasis_points": [{"type": "definition"|"key_fact", "text": string}]}. ` +
		"Every trigger must be a phrase that appears verbatim in the script. No prose, no code fences."
}

func annotationUserPrompt(script string) string {
	return "Script:\n" + script + "\n\nProduce the overlay annotation JSON."
}
