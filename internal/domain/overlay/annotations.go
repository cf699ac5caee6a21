package overlay

import (
	"bytes"
	"encoding/json"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// ParseOutcome distinguishes "upstream gave nothing" from "upstream gave
// garbage" at the annotation boundary. Both still default safely.
type ParseOutcome int

const (
	ParseOK ParseOutcome = iota
	ParseEmpty
	ParseMalformed
)

func (o ParseOutcome) String() string {
	switch o {
	case ParseOK:
		return "ok"
	case ParseEmpty:
		return "empty"
	default:
		return "malformed"
	}
}

// ParseAnnotations decodes an upstream overlay annotation draft. Missing
// fields default to empty lists; a missing or unparseable payload collapses
// to the all-empty set instead of propagating a failure. Models often wrap
// JSON in prose or code fences, so a bare object is cut out before giving up.
func ParseAnnotations(raw []byte) (types.AnnotationSet, ParseOutcome) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return emptySet(), ParseEmpty
	}

	var set types.AnnotationSet
	if err := json.Unmarshal(trimmed, &set); err != nil {
		inner, ok := extractJSONObject(trimmed)
		if !ok || json.Unmarshal(inner, &set) != nil {
			return emptySet(), ParseMalformed
		}
	}
	normalize(&set)
	return set, ParseOK
}

func emptySet() types.AnnotationSet {
	return types.AnnotationSet{
		HighlightKeywords: []string{},
		CaptionPhrases:    []types.Caption{},
		EmphasisPoints:    []types.EmphasisPoint{},
	}
}

func normalize(set *types.AnnotationSet) {
	if set.HighlightKeywords == nil {
		set.HighlightKeywords = []string{}
	}
	if set.CaptionPhrases == nil {
		set.CaptionPhrases = []types.Caption{}
	}
	if set.EmphasisPoints == nil {
		set.EmphasisPoints = []types.EmphasisPoint{}
	}
}

func extractJSONObject(b []byte) ([]byte, bool) {
	start := bytes.IndexByte(b, '{')
	end := bytes.LastIndexByte(b, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	return b[start : end+1], true
}
