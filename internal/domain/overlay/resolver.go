// Package overlay resolves trigger phrases against spoken text and schedules
// captions and emphasis callouts onto timeline segments without collisions.
package overlay

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the minimum similarity ratio for accepting a corrected
// trigger window.
const MatchThreshold = 0.6

// Resolution is the outcome of resolving one trigger against one text.
type Resolution struct {
	// Trigger is the resolved phrase. When Corrected, it is a verbatim
	// substring of the text it was resolved against.
	Trigger   string
	Ratio     float64
	Corrected bool
}

// ResolveTrigger resolves a Caption trigger against spoken text,
// case-insensitively. An exact substring is accepted unchanged. Otherwise a
// window of identical token length slides across the text; the
// maximum-ratio window wins, earliest position breaking ties, and is
// accepted when its ratio reaches MatchThreshold. Every window is scanned
// before choosing, so identical (trigger, text) pairs always yield identical
// outcomes.
func ResolveTrigger(trigger, text string) (Resolution, bool) {
	trig := strings.TrimSpace(trigger)
	if trig == "" {
		return Resolution{}, false
	}
	if strings.Contains(strings.ToLower(text), strings.ToLower(trig)) {
		return Resolution{Trigger: trig, Ratio: 1}, true
	}

	trigTokens := strings.Fields(trig)
	textTokens := tokenize(text)
	if len(trigTokens) == 0 || len(trigTokens) > len(textTokens) {
		return Resolution{}, false
	}

	lowTrig := strings.ToLower(trig)
	best := -1.0
	bestStart, bestEnd := 0, 0
	for i := 0; i+len(trigTokens) <= len(textTokens); i++ {
		start := textTokens[i].start
		end := textTokens[i+len(trigTokens)-1].end
		ratio := similarity(lowTrig, strings.ToLower(text[start:end]))
		if ratio > best {
			best = ratio
			bestStart, bestEnd = start, end
		}
	}

	if best >= MatchThreshold {
		return Resolution{Trigger: text[bestStart:bestEnd], Ratio: best, Corrected: true}, true
	}
	return Resolution{Ratio: best}, false
}

type span struct{ start, end int }

// tokenize records byte offsets per whitespace-separated token so corrected
// triggers can be cut verbatim from the original text.
func tokenize(s string) []span {
	var out []span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, span{start, len(s)})
	}
	return out
}

// similarity is a normalized edit-distance ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(max)
}
