// Package assessment records baseline clinical measurements and propagates
// them into the owning patient profile's baseline and target fields.
package assessment

import (
	"errors"
	"fmt"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

// ErrUnknownType reports an unrecognized assessment type enum value.
var ErrUnknownType = errors.New("unknown assessment type")

// Target multipliers are therapy-design constants, not tunable inputs.
const (
	gaitTargetMultiplier   = 1.10
	speechTargetMultiplier = 1.15
)

// Apply mutates the profile's baseline/target fields for the given
// assessment type and returns the note text to store on the assessment row.
// Scale-based types (balance, coordination, cognitive) touch no numeric
// baseline; their note is prefixed with a standardized scale summary.
func Apply(profile *models.PatientProfile, assessmentType string, value float64, notes string) (string, error) {
	switch assessmentType {
	case models.AssessmentGait:
		baseline := value
		target := value * gaitTargetMultiplier
		profile.BaselineCadence = &baseline
		profile.TargetCadence = &target
		return notes, nil
	case models.AssessmentTapping:
		baseline := value
		profile.BaselineTappingSpeed = &baseline
		return notes, nil
	case models.AssessmentSpeech:
		baseline := value
		target := value * speechTargetMultiplier
		profile.BaselineSpeechRate = &baseline
		profile.TargetSpeechRate = &target
		return notes, nil
	case models.AssessmentBalance:
		return fmt.Sprintf("Berg Balance Scale Score: %g/56. %s", value, notes), nil
	case models.AssessmentCoordination:
		return fmt.Sprintf("Finger-to-Nose Time: %gs per repetition. %s", value, notes), nil
	case models.AssessmentCognitive:
		return fmt.Sprintf("MoCA Score: %g/30. %s", value, notes), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, assessmentType)
	}
}
