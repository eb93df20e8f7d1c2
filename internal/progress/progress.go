// Package progress maps a learner's app state onto brain regions: which
// subjects light which regions, and which subjects count as mastered.
package progress

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
	"github.com/Acam5878/path-of-a-genius/internal/renderer"
)

// PassingScore is the lowest quiz score that masters a subject.
const PassingScore = 70

// Subject is a course of study.
type Subject string

const (
	Mathematics Subject = "mathematics"
	Logic       Subject = "logic"
	Physics     Subject = "physics"
	Astronomy   Subject = "astronomy"
	Latin       Subject = "latin"
	Greek       Subject = "greek"
	Literature  Subject = "literature"
	History     Subject = "history"
	Philosophy  Subject = "philosophy"
	Music       Subject = "music"
	Art         Subject = "art"
	Chemistry   Subject = "chemistry"
	Biology     Subject = "biology"
	Rhetoric    Subject = "rhetoric"
)

var subjectRegions = map[Subject][]brain.RegionKey{
	Mathematics: {brain.Parietal, brain.Prefrontal},
	Logic:       {brain.Prefrontal, brain.Frontal},
	Physics:     {brain.Parietal, brain.Frontal},
	Astronomy:   {brain.Occipital, brain.Parietal},
	Latin:       {brain.Broca, brain.Wernicke},
	Greek:       {brain.Broca, brain.Wernicke, brain.Temporal},
	Literature:  {brain.Wernicke, brain.Temporal},
	History:     {brain.Hippocampus, brain.Temporal},
	Philosophy:  {brain.Prefrontal, brain.AnteriorCingulate},
	Music:       {brain.Temporal, brain.Cerebellum},
	Art:         {brain.Occipital, brain.Motor},
	Chemistry:   {brain.Frontal, brain.Hippocampus},
	Biology:     {brain.Somatosensory, brain.Hippocampus},
	Rhetoric:    {brain.Broca, brain.Motor},
}

// Subjects returns every known subject, sorted.
func Subjects() []Subject {
	out := make([]Subject, 0, len(subjectRegions))
	for s := range subjectRegions {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Regions returns the regions a subject exercises, or nil if unknown.
func Regions(s Subject) []brain.RegionKey {
	return slices.Clone(subjectRegions[s])
}

// State is the persisted app state the viewer reacts to.
type State struct {
	Authenticated    bool            `yaml:"authenticated"`
	UnlockedSubjects []Subject       `yaml:"unlocked_subjects"`
	QuizScores       map[Subject]int `yaml:"quiz_scores"`
}

// Mastered reports whether s is unlocked or its quiz score passes.
func (st State) Mastered(s Subject) bool {
	return slices.Contains(st.UnlockedSubjects, s) || st.QuizScores[s] >= PassingScore
}

// ActiveRegions returns the union of regions of every mastered subject.
// Unknown subjects contribute nothing.
func ActiveRegions(st State) brain.RegionSet {
	set := brain.NewRegionSet()
	for s, regions := range subjectRegions {
		if !st.Mastered(s) {
			continue
		}
		for _, r := range regions {
			set.Add(r)
		}
	}
	return set
}

// Options converts st into render options. A signed-out learner sees the
// dimmed, locked brain.
func Options(st State) renderer.Options {
	return renderer.Options{
		ActiveRegions: ActiveRegions(st),
		IsLocked:      !st.Authenticated,
	}
}

// Parse decodes a YAML state document.
func Parse(data []byte) (State, error) {
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

// Load reads and parses the state file at path.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}
	return Parse(data)
}

// Save writes st to path as YAML.
func Save(path string, st State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
