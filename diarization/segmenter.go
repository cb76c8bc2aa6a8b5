package diarization

import "strings"

const sentenceDelimiter = ". "

// DefaultPatientCues mark a unit as patient speech.
var DefaultPatientCues = []string{"patient says", "they report", "states"}

// Config configures the segmenter.
type Config struct {
	// PatientCues are matched case-insensitively as substrings.
	// Empty means DefaultPatientCues.
	PatientCues []string `yaml:"patient_cues" mapstructure:"patient_cues"`
}

// Segmenter attributes transcript units to clinician or patient. It holds no
// mutable state and is safe for concurrent use.
type Segmenter struct {
	cues []string
}

// New creates a segmenter from cfg.
func New(cfg Config) *Segmenter {
	cues := cfg.PatientCues
	if len(cues) == 0 {
		cues = DefaultPatientCues
	}
	lowered := make([]string, 0, len(cues))
	for _, c := range cues {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			lowered = append(lowered, c)
		}
	}
	return &Segmenter{cues: lowered}
}

var defaultSegmenter = New(Config{})

// Split segments text with the default cues.
func Split(text string) Transcript {
	return defaultSegmenter.Segment(text)
}

// Segment splits text into role-tagged units. Units keep their terminating
// period and each stream joins its units with a single space. Empty units
// between adjacent delimiters are kept. It never fails; empty input yields an
// empty Transcript.
func (s *Segmenter) Segment(text string) Transcript {
	var (
		out                Transcript
		clinician, patient []string
	)
	if text == "" {
		return out
	}

	parts := strings.Split(text, sentenceDelimiter)
	for i, unit := range parts {
		// The delimiter consumed this unit's period.
		if i < len(parts)-1 {
			unit += "."
		}

		role := RoleClinician
		if s.isPatient(unit) {
			role = RolePatient
			patient = append(patient, unit)
		} else {
			clinician = append(clinician, unit)
		}
		out.Segments = append(out.Segments, Segment{Role: role, Text: unit})
	}

	out.Clinician = strings.Join(clinician, " ")
	out.Patient = strings.Join(patient, " ")
	return out
}

func (s *Segmenter) isPatient(unit string) bool {
	lower := strings.ToLower(unit)
	for _, cue := range s.cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
