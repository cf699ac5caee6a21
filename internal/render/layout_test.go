package render

import (
	"strings"
	"testing"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

func TestLayoutSlide_Budgets(t *testing.T) {
	slide := types.Slide{
		Kind:        types.SlideNarrator,
		SpeakerName: "Narrator",
		Text:        strings.Repeat("water vapor rises and cools down quickly ", 4),
	}
	layout := LayoutSlide(slide)
	if len(layout.Lines) == 0 {
		t.Fatalf("expected wrapped lines")
	}
	for i, line := range layout.Lines {
		if len([]rune(line)) > charBudget {
			t.Fatalf("line %d exceeds char budget: %q", i, line)
		}
		if n := len(strings.Fields(line)); n > wordBudget {
			t.Fatalf("line %d has %d words", i, n)
		}
	}
	// No word is lost by wrapping.
	joined := strings.Fields(strings.Join(layout.Lines, " "))
	orig := strings.Fields(slide.Text)
	if len(joined) != len(orig) {
		t.Fatalf("wrap lost words: %d vs %d", len(joined), len(orig))
	}
}

func TestLayoutSlide_LongWordGetsOwnLine(t *testing.T) {
	slide := types.Slide{Kind: types.SlideNarrator, Text: "supercalifragilisticexpialidociousandthensome word"}
	layout := LayoutSlide(slide)
	if len(layout.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", layout.Lines)
	}
}

func TestLayoutSlide_Empty(t *testing.T) {
	layout := LayoutSlide(types.Slide{Kind: types.SlideTitle})
	if len(layout.Lines) != 0 {
		t.Fatalf("expected no lines, got %v", layout.Lines)
	}
}

func TestAssetCache(t *testing.T) {
	c := NewAssetCache()
	slide := types.Slide{Kind: types.SlideCharacter, SpeakerName: "Zara", Text: "Hi there!"}

	first := c.Layout(slide)
	second := c.Layout(slide)
	if len(first.Lines) != 1 || first.Lines[0] != "Hi there!" {
		t.Fatalf("unexpected layout: %+v", first)
	}
	if len(second.Lines) != len(first.Lines) {
		t.Fatalf("cached layout differs")
	}
	if c.Len() != 1 {
		t.Fatalf("cache size = %d, want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("cache not cleared: %d items", c.Len())
	}
}
