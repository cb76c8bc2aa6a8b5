package transcription

import "io"

// Request holds parameters for a transcription call.
type Request struct {
	// Audio is the audio content. Data is used when set, Audio otherwise.
	Audio io.Reader `json:"-"`
	Data  []byte    `json:"-"`
	// FileName is the upload name reported to the backend (e.g. "visit.wav").
	FileName string `json:"file_name,omitempty"`
	// ContentType is the audio MIME type (e.g. "audio/wav").
	ContentType string `json:"content_type,omitempty"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
	// Model overrides the backend's default model.
	Model string `json:"model,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
