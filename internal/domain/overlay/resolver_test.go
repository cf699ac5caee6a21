package overlay

import (
	"strings"
	"testing"
)

func TestResolveTrigger_ExactSubstring(t *testing.T) {
	res, ok := ResolveTrigger("array of data", "We collect a vast ARRAY of DATA points daily.")
	if !ok {
		t.Fatalf("expected acceptance")
	}
	if res.Corrected {
		t.Fatalf("exact match must not be corrected")
	}
	if res.Trigger != "array of data" {
		t.Fatalf("trigger changed on exact match: %q", res.Trigger)
	}
}

func TestResolveTrigger_TypoCorrected(t *testing.T) {
	text := "Today we explore a vast array of data points together."
	res, ok := ResolveTrigger("aray of data", text)
	if !ok {
		t.Fatalf("expected acceptance, ratio %.2f", res.Ratio)
	}
	if !res.Corrected {
		t.Fatalf("expected correction")
	}
	if res.Trigger != "array of data" {
		t.Fatalf("corrected trigger = %q, want %q", res.Trigger, "array of data")
	}
	if res.Ratio < MatchThreshold {
		t.Fatalf("ratio %.2f below threshold", res.Ratio)
	}
	if !strings.Contains(strings.ToLower(text), strings.ToLower(res.Trigger)) {
		t.Fatalf("corrected trigger is not a substring of text")
	}
}

func TestResolveTrigger_UnrelatedDropped(t *testing.T) {
	res, ok := ResolveTrigger("completely unrelated phrase", "Water evaporates into the sky above us.")
	if ok {
		t.Fatalf("expected drop, got %+v", res)
	}
	if res.Ratio >= MatchThreshold {
		t.Fatalf("ratio %.2f should stay below threshold", res.Ratio)
	}
}

func TestResolveTrigger_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		trigger string
		text    string
	}{
		{"empty", "", "some text"},
		{"whitespace", "   \t ", "some text"},
		{"longer than text", "one two three four", "one two"},
		{"empty text", "phrase", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ResolveTrigger(tt.trigger, tt.text); ok {
				t.Fatalf("expected drop")
			}
		})
	}
}

func TestResolveTrigger_EarliestWindowWinsTies(t *testing.T) {
	// Both occurrences of "big data" score identically; the first one must win.
	text := "first big datta here and later big datta again"
	res, ok := ResolveTrigger("big data", text)
	if !ok || !res.Corrected {
		t.Fatalf("expected corrected acceptance, got %+v ok=%v", res, ok)
	}
	idx := strings.Index(text, res.Trigger)
	if idx != len("first ") {
		t.Fatalf("expected earliest window, matched at byte %d (%q)", idx, res.Trigger)
	}
}

func TestResolveTrigger_Deterministic(t *testing.T) {
	trigger, text := "aray of data", "a vast array of data points"
	first, okFirst := ResolveTrigger(trigger, text)
	for i := 0; i < 5; i++ {
		got, ok := ResolveTrigger(trigger, text)
		if ok != okFirst || got != first {
			t.Fatalf("non-deterministic resolution: %+v vs %+v", got, first)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"abc", "abc", 1, 1},
		{"", "", 1, 1},
		{"abc", "xyz", 0, 0.01},
		{"aray of data", "array of data", 0.9, 1},
	}
	for _, tt := range tests {
		got := similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Fatalf("similarity(%q, %q) = %.3f, want [%.2f, %.2f]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "  a vast  array "
	spans := tokenize(text)
	if len(spans) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(spans))
	}
	words := []string{"a", "vast", "array"}
	for i, sp := range spans {
		if text[sp.start:sp.end] != words[i] {
			t.Fatalf("token %d = %q, want %q", i, text[sp.start:sp.end], words[i])
		}
	}
}
