// Package beat derives therapy parameters from a patient's impairment
// profile: the starting tempo for a session and the character of the beat
// that cues it.
package beat

import (
	"fmt"
	"math"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

const (
	// MinTempo and MaxTempo are the clinical safety bounds for any cue.
	MinTempo = 40.0
	MaxTempo = 120.0

	// overrideTolerance is the band (BPM) inside which a clinician's
	// requested starting tempo is honored over the derived optimum.
	overrideTolerance = 10.0
)

// InvalidPreferenceError reports an unrecognized preference enum value on
// the patient profile.
type InvalidPreferenceError struct {
	Field string
	Value string
}

func (e InvalidPreferenceError) Error() string {
	return fmt.Sprintf("invalid %s preference: %q", e.Field, e.Value)
}

// PatientCondition is the flattened impairment view handed to tempo
// derivation and the rendering collaborator.
type PatientCondition struct {
	AffectedSide    string `json:"affected_side,omitempty"`
	Severity        string `json:"severity,omitempty"`
	AphasiaType     string `json:"aphasia_type,omitempty"`
	Dysarthria      string `json:"dysarthria_severity,omitempty"`
	MotorImpairment string `json:"motor_impairment,omitempty"`
	CognitiveStatus string `json:"cognitive_status,omitempty"`
	EmotionalStatus string `json:"emotional_status,omitempty"`
	PreferredGenre  string `json:"preferred_genre,omitempty"`
	PreferredSound  string `json:"preferred_sound,omitempty"`
}

func ConditionFromProfile(profile models.PatientProfile) PatientCondition {
	sound := profile.PreferredBeatSound
	if sound == "" {
		sound = "metronome"
	}
	return PatientCondition{
		AffectedSide:    profile.StrokeAffectedSide,
		Severity:        profile.StrokeSeverity,
		AphasiaType:     profile.AphasiaType,
		Dysarthria:      profile.DysarthriaSeverity,
		MotorImpairment: profile.MotorImpairmentLevel,
		CognitiveStatus: profile.CognitiveStatus,
		EmotionalStatus: profile.EmotionalStatus,
		PreferredGenre:  profile.PreferredMusicGenre,
		PreferredSound:  sound,
	}
}

// Pattern describes the instrumentation and rhythmic character of the cue.
type Pattern struct {
	Name       string `json:"name"`
	Instrument string `json:"instrument"`
	Style      string `json:"style"`
	Intensity  string `json:"intensity"`
}

// TherapyParameters is the outcome of profile translation for one session.
type TherapyParameters struct {
	InitialTempo float64
	OptimalTempo float64
	Overridden   bool
	Pattern      *Pattern
}

type Planner struct {
	sounds map[string]SoundDef
	styles map[string]string
	moods  map[string]string
}

func NewPlanner(catalog Catalog) *Planner {
	p := &Planner{
		sounds: make(map[string]SoundDef, len(catalog.Sounds)),
		styles: make(map[string]string, len(catalog.Styles)),
		moods:  make(map[string]string, len(catalog.Moods)),
	}
	for _, s := range catalog.Sounds {
		p.sounds[s.Name] = s
	}
	for _, s := range catalog.Styles {
		p.styles[s.Genre] = s.Style
	}
	for _, m := range catalog.Moods {
		p.moods[m.Name] = m.Intensity
	}
	return p
}

// DeriveTherapyParameters translates an impairment profile into session
// parameters. Only stroke profiles are translated; for every other condition
// the requested tempo passes through unchanged with no pattern override.
//
// A requested tempo more than 10 BPM away from the derived optimum is
// replaced by the optimum. This keeps clinically inappropriate starting
// tempos off the session while leaving clinician discretion inside the
// tolerance band intact.
func (p *Planner) DeriveTherapyParameters(profile models.PatientProfile, sessionType string, requestedTempo float64) (TherapyParameters, error) {
	if profile.Condition != "stroke" {
		return TherapyParameters{InitialTempo: requestedTempo}, nil
	}

	cond := ConditionFromProfile(profile)
	pattern, err := p.SelectPattern(cond)
	if err != nil {
		return TherapyParameters{}, err
	}

	optimal := OptimalTempo(sessionType, cond)
	params := TherapyParameters{
		InitialTempo: requestedTempo,
		OptimalTempo: optimal,
		Pattern:      &pattern,
	}
	if math.Abs(requestedTempo-optimal) > overrideTolerance {
		params.InitialTempo = optimal
		params.Overridden = true
	}
	return params, nil
}

// SelectPattern is a pure categorical mapping from patient preferences and
// emotional status to a beat pattern. Unrecognized enum values fail; empty
// genre and emotional status fall back to plain/steady.
func (p *Planner) SelectPattern(cond PatientCondition) (Pattern, error) {
	sound, ok := p.sounds[cond.PreferredSound]
	if !ok {
		return Pattern{}, InvalidPreferenceError{Field: "beat_sound", Value: cond.PreferredSound}
	}

	style := "plain"
	if cond.PreferredGenre != "" {
		style, ok = p.styles[cond.PreferredGenre]
		if !ok {
			return Pattern{}, InvalidPreferenceError{Field: "music_genre", Value: cond.PreferredGenre}
		}
	}

	intensity := "steady"
	if cond.EmotionalStatus != "" {
		intensity, ok = p.moods[cond.EmotionalStatus]
		if !ok {
			return Pattern{}, InvalidPreferenceError{Field: "emotional_status", Value: cond.EmotionalStatus}
		}
	}

	return Pattern{
		Name:       fmt.Sprintf("%s-%s-%s", sound.Name, style, intensity),
		Instrument: sound.Instrument,
		Style:      style,
		Intensity:  intensity,
	}, nil
}

// OptimalTempo derives a clinically appropriate starting tempo from the
// session type and the profile's severity and motor impairment, clamped to
// the safety bounds. Unknown attribute values contribute no adjustment.
func OptimalTempo(sessionType string, cond PatientCondition) float64 {
	var base float64
	switch sessionType {
	case models.SessionSpeechTherapy:
		base = 90
	case models.SessionUpperLimb:
		base = 70
	default: // gait training
		base = 80
	}

	switch cond.Severity {
	case "moderate":
		base -= 5
	case "severe":
		base -= 15
	}

	switch cond.MotorImpairment {
	case "moderate":
		base -= 5
	case "severe":
		base -= 10
	}

	return math.Min(math.Max(base, MinTempo), MaxTempo)
}
