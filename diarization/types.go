package diarization

import "strings"

// Role identifies who spoke a unit.
type Role string

const (
	RoleClinician Role = "clinician"
	RolePatient   Role = "patient"
)

// Segment is one sentence unit attributed to a role.
type Segment struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript holds the per-role streams and the ordered units they were
// built from.
type Transcript struct {
	Clinician string    `json:"clinician"`
	Patient   string    `json:"patient"`
	Segments  []Segment `json:"segments,omitempty"`
}

// Combined flattens the two streams into one text, clinician first.
func (t Transcript) Combined() string {
	return t.Clinician + " " + t.Patient
}

// Original rejoins the units in source order.
func (t Transcript) Original() string {
	texts := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}
