// Package api exposes the documentation service over HTTP:
//
//	POST /generate_documentation  {"transcript": "..."} -> Result
//	POST /transcribe              multipart "file" (audio/*) -> transcript + diarization
//	GET  /elements                element catalogue in extraction order
//
// Success bodies are wrapped as {"data": ...}; failures use the AppError
// envelope.
package api
