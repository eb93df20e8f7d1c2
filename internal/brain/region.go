// Package brain generates the anatomical point cloud: the static region
// catalog, the rejection-sampled brain shape with its region labels, and the
// sparse synapse graph drawn between nearby points.
package brain

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RegionKey is the stable identifier of an anatomical region.
type RegionKey string

// Region keys, in catalog order.
const (
	Prefrontal        RegionKey = "prefrontal"
	Broca             RegionKey = "broca"
	Wernicke          RegionKey = "wernicke"
	Parietal          RegionKey = "parietal"
	Temporal          RegionKey = "temporal"
	Occipital         RegionKey = "occipital"
	AnteriorCingulate RegionKey = "anterior_cingulate"
	Hippocampus       RegionKey = "hippocampus"
	Frontal           RegionKey = "frontal"
	Motor             RegionKey = "motor"
	Somatosensory     RegionKey = "somatosensory"
	Cerebellum        RegionKey = "cerebellum"
)

// Region is one entry of the fixed anatomical catalog.
type Region struct {
	Key         RegionKey
	Label       string
	BaseColor   colorful.Color
	GlowColor   string // display-only hex
	Description string
}

var catalog = []Region{
	region(Prefrontal, "Prefrontal Cortex", "#8f7cff", "#b3a6ff",
		"Planning, reasoning and weighing abstract ideas."),
	region(Broca, "Broca's Area", "#ff7a59", "#ffa58c",
		"Producing language and structuring sentences."),
	region(Wernicke, "Wernicke's Area", "#ffb347", "#ffd08a",
		"Understanding spoken and written language."),
	region(Parietal, "Parietal Lobe", "#4fc3f7", "#8fdcfb",
		"Spatial sense, numbers and integrating the senses."),
	region(Temporal, "Temporal Lobe", "#66d9a6", "#9cebc8",
		"Hearing, memory and recognising meaning."),
	region(Occipital, "Occipital Lobe", "#f06292", "#f59ab8",
		"Vision and interpreting what the eyes see."),
	region(AnteriorCingulate, "Anterior Cingulate", "#ba68c8", "#d59ee0",
		"Attention, error monitoring and motivation."),
	region(Hippocampus, "Hippocampus", "#ffd54f", "#ffe58f",
		"Forming new memories and finding your way."),
	region(Frontal, "Frontal Lobe", "#7986cb", "#a9b2e0",
		"Judgement, self-control and deliberate action."),
	region(Motor, "Motor Cortex", "#4db6ac", "#86d0c9",
		"Planning and issuing voluntary movement."),
	region(Somatosensory, "Somatosensory Cortex", "#e57373", "#efa3a3",
		"Touch, temperature and body position."),
	region(Cerebellum, "Cerebellum", "#aed581", "#cbe5ad",
		"Coordination, balance and practised skill."),
}

var regionIndex = func() map[RegionKey]int {
	m := make(map[RegionKey]int, len(catalog))
	for i, r := range catalog {
		m[r.Key] = i
	}
	return m
}()

func region(key RegionKey, label, base, glow, desc string) Region {
	c, err := colorful.Hex(base)
	if err != nil {
		panic(fmt.Sprintf("brain: bad base colour %q for %s: %v", base, key, err))
	}
	return Region{Key: key, Label: label, BaseColor: c, GlowColor: glow, Description: desc}
}

// Catalog returns a copy of the region catalog in its fixed order.
func Catalog() []Region {
	out := make([]Region, len(catalog))
	copy(out, catalog)
	return out
}

// RegionCount is the number of catalog entries.
func RegionCount() int { return len(catalog) }

// Lookup returns the region for key.
func Lookup(key RegionKey) (Region, bool) {
	i, ok := regionIndex[key]
	if !ok {
		return Region{}, false
	}
	return catalog[i], true
}

// Index returns the catalog position of key, or -1.
func Index(key RegionKey) int {
	if i, ok := regionIndex[key]; ok {
		return i
	}
	return -1
}

// At returns the region at catalog position i.
func At(i int) Region { return catalog[i] }

// RegionSet is an unordered set of region keys.
type RegionSet map[RegionKey]struct{}

// NewRegionSet builds a set from keys.
func NewRegionSet(keys ...RegionKey) RegionSet {
	s := make(RegionSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set. A nil set is empty.
func (s RegionSet) Has(key RegionKey) bool {
	_, ok := s[key]
	return ok
}

// Add inserts key.
func (s RegionSet) Add(key RegionKey) { s[key] = struct{}{} }

// Sorted returns the members in catalog order; unknown keys are dropped.
func (s RegionSet) Sorted() []RegionKey {
	out := make([]RegionKey, 0, len(s))
	for _, r := range catalog {
		if s.Has(r.Key) {
			out = append(out, r.Key)
		}
	}
	return out
}
