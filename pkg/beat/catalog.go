package beat

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SoundDef maps a patient-preferred beat sound to the instrument voice the
// rendering tier uses for it.
type SoundDef struct {
	Name       string `yaml:"name" json:"name"`
	Instrument string `yaml:"instrument" json:"instrument"`
}

// StyleDef maps a preferred music genre to a rhythmic style.
type StyleDef struct {
	Genre string `yaml:"genre" json:"genre"`
	Style string `yaml:"style" json:"style"`
}

// MoodDef maps an emotional status to a beat intensity.
type MoodDef struct {
	Name      string `yaml:"name" json:"name"`
	Intensity string `yaml:"intensity" json:"intensity"`
}

type Catalog struct {
	Sounds []SoundDef `yaml:"sounds" json:"sounds"`
	Styles []StyleDef `yaml:"styles" json:"styles"`
	Moods  []MoodDef  `yaml:"moods" json:"moods"`
}

func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}

	var catalog Catalog
	if err := yaml.Unmarshal(content, &catalog); err != nil {
		return Catalog{}, err
	}

	if len(catalog.Sounds) == 0 {
		return Catalog{}, errors.New("no beat sounds configured")
	}

	return catalog, nil
}

func DefaultCatalog() Catalog {
	return Catalog{
		Sounds: []SoundDef{
			{Name: "metronome", Instrument: "click"},
			{Name: "drum", Instrument: "snare"},
			{Name: "piano", Instrument: "grand_piano"},
			{Name: "bell", Instrument: "woodblock_bell"},
		},
		Styles: []StyleDef{
			{Genre: "classical", Style: "orchestral"},
			{Genre: "jazz", Style: "swing"},
			{Genre: "pop", Style: "backbeat"},
			{Genre: "rock", Style: "backbeat"},
			{Genre: "electronic", Style: "four_on_floor"},
			{Genre: "folk", Style: "waltz"},
		},
		Moods: []MoodDef{
			{Name: "motivated", Intensity: "energizing"},
			{Name: "neutral", Intensity: "steady"},
			{Name: "anxious", Intensity: "calm"},
			{Name: "depressed", Intensity: "calm"},
			{Name: "frustrated", Intensity: "calm"},
		},
	}
}
