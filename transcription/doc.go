// Package transcription defines the speech-to-text provider interface and
// its request and response types.
//
// Backends:
//
//   - transcription/whisper: a faster-whisper HTTP sidecar
//
// Providers expose Transcribe directly; [AsRequestResponse] lifts one into a
// provider.RequestResponse so it can be wrapped with the provider middleware.
package transcription
