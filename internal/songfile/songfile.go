// Package songfile parses song-schema files and computes section timings
// for the sequential song executor. Files are YAML or JSON (YAML being a
// superset, one parser covers both).
package songfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Song is a parsed song-schema file.
type Song struct {
	Metadata  Metadata  `yaml:"metadata" json:"metadata"`
	Structure Structure `yaml:"structure" json:"structure"`
}

// Metadata carries tempo and time signature.
type Metadata struct {
	Tempo         float64       `yaml:"tempo" json:"tempo"`
	TimeSignature TimeSignature `yaml:"time_signature" json:"time_signature"`
}

// TimeSignature is numerator/denominator, e.g. 4/4.
type TimeSignature struct {
	Numerator   int `yaml:"numerator" json:"numerator"`
	Denominator int `yaml:"denominator" json:"denominator"`
}

// Structure lists the song sections in playback order.
type Structure struct {
	Sections []Section `yaml:"sections" json:"sections"`
}

// Section is one song section; it maps to the session scene of the same
// index.
type Section struct {
	Name string `yaml:"name" json:"name"`
	Bars int    `yaml:"bars" json:"bars"`
}

// SectionTiming is the computed schedule entry for one section.
type SectionTiming struct {
	Name          string
	SceneIndex    int
	StartBeat     float64
	DurationBeats float64
	Bars          int
}

// Load reads and parses a song-schema file, applying the documented
// defaults: tempo 120, 4/4 signature, 4 bars per section.
func Load(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("songfile: %w", err)
	}

	var song Song
	if err := yaml.Unmarshal(data, &song); err != nil {
		return nil, fmt.Errorf("songfile: parse %s: %w", path, err)
	}
	song.applyDefaults()
	return &song, nil
}

func (s *Song) applyDefaults() {
	if s.Metadata.Tempo <= 0 {
		s.Metadata.Tempo = 120
	}
	if s.Metadata.TimeSignature.Numerator <= 0 {
		s.Metadata.TimeSignature.Numerator = 4
	}
	if s.Metadata.TimeSignature.Denominator <= 0 {
		s.Metadata.TimeSignature.Denominator = 4
	}
	for i := range s.Structure.Sections {
		if s.Structure.Sections[i].Bars <= 0 {
			s.Structure.Sections[i].Bars = 4
		}
		if s.Structure.Sections[i].Name == "" {
			s.Structure.Sections[i].Name = fmt.Sprintf("section_%d", i)
		}
	}
}

// Timings computes per-section start and duration in beats. Section i fires
// scene i.
func (s *Song) Timings() []SectionTiming {
	beatsPerBar := float64(s.Metadata.TimeSignature.Numerator)

	timings := make([]SectionTiming, 0, len(s.Structure.Sections))
	currentBeat := 0.0
	for i, section := range s.Structure.Sections {
		duration := float64(section.Bars) * beatsPerBar
		timings = append(timings, SectionTiming{
			Name:          section.Name,
			SceneIndex:    i,
			StartBeat:     currentBeat,
			DurationBeats: duration,
			Bars:          section.Bars,
		})
		currentBeat += duration
	}
	return timings
}

// TotalBeats sums the section durations.
func (s *Song) TotalBeats() float64 {
	total := 0.0
	for _, t := range s.Timings() {
		total += t.DurationBeats
	}
	return total
}

// BeatsToSeconds converts beats to seconds at the given tempo.
func BeatsToSeconds(beats, tempo float64) float64 {
	return beats * (60.0 / tempo)
}
