package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kishore121523/AI-content-factory/internal/types"
)

// Plan is the lesson-plan document driving one run: a principal character and
// the lessons to produce.
type Plan struct {
	Name      string          `yaml:"name"`
	Character types.Character `yaml:"character"`
	Lessons   []types.Lesson  `yaml:"lessons"`
}

func LoadPlan(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, fmt.Errorf("open lesson plan: %w", err)
	}
	defer f.Close()

	var plan Plan
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil {
		return Plan{}, fmt.Errorf("decode lesson plan: %w", err)
	}
	if strings.TrimSpace(plan.Character.Name) == "" {
		return Plan{}, fmt.Errorf("lesson plan: character name is required")
	}
	if len(plan.Lessons) == 0 {
		return Plan{}, fmt.Errorf("lesson plan: at least one lesson is required")
	}
	for i, l := range plan.Lessons {
		if strings.TrimSpace(l.Title) == "" {
			return Plan{}, fmt.Errorf("lesson plan: lesson %d has no title", i+1)
		}
	}
	if plan.Name == "" {
		plan.Name = plan.Character.Name
	}
	return plan, nil
}
