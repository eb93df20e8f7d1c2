// Package audio plays a short chime whenever a region fires. Each region
// has its own pitch on a pentatonic scale so taps sound like a melody.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ChimeLength is how long one chime rings.
const ChimeLength = 450 * time.Millisecond

// baseFrequency is A3; the scale climbs from here.
const baseFrequency = 220.0

// Minor pentatonic steps in semitones within one octave.
var pentatonic = []int{0, 3, 5, 7, 10}

// Manager mixes chimes onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0

	mixer *beep.Mixer
}

// New creates a chime player at the given volume.
func New(volume float64) *Manager {
	return &Manager{
		volume: clamp(volume, 0, 1),
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker. Chimes played before Init are dropped.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close silences the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the chime volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the chime volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Frequency returns the pitch in Hz of the region at catalog index i. Every
// five regions climb one octave.
func Frequency(i int) float64 {
	if i < 0 {
		i = 0
	}
	octave, step := i/len(pentatonic), pentatonic[i%len(pentatonic)]
	semis := float64(step + 12*octave)
	return baseFrequency * math.Pow(2, semis/12)
}

// Chime rings the tone of region i, louder for stronger firings.
func (m *Manager) Chime(i int, intensity float32) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.volume <= 0 || intensity <= 0 {
		return nil
	}

	tone, err := generators.SineTone(m.sampleRate, Frequency(i))
	if err != nil {
		return fmt.Errorf("tone for region %d: %w", i, err)
	}
	env := &envelope{
		streamer: tone,
		total:    m.sampleRate.N(ChimeLength),
		gain:     0.3 * clamp(float64(intensity), 0, 1),
	}
	vol := &effects.Volume{
		Streamer: env,
		Base:     2,
		Volume:   volumeToDb(m.volume) / 6,
	}

	speaker.Lock()
	m.mixer.Add(vol)
	speaker.Unlock()
	return nil
}

// volumeToDb converts a 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// envelope plays total samples of streamer with a quadratic decay from gain
// to silence, then ends.
type envelope struct {
	streamer beep.Streamer
	total    int
	pos      int
	gain     float64
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rest := e.total - e.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)
	for i := range samples[:n] {
		left := 1 - float64(e.pos+i)/float64(e.total)
		g := e.gain * left * left
		samples[i][0] *= g
		samples[i][1] *= g
	}
	e.pos += n
	return n, ok && e.pos < e.total
}

func (e *envelope) Err() error {
	return e.streamer.Err()
}
