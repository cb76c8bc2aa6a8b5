// Package diarization splits a visit transcript into clinician and patient
// speech using lexical cues.
//
// The split is sentence based: the transcript is cut on ". " and every unit
// containing a patient cue ("patient says", "they report", "states") is
// attributed to the patient. Everything else is clinician speech.
//
//	t := diarization.Split("Clinician examined patient. Patient says they feel dizzy.")
//	// t.Clinician == "Clinician examined patient."
//	// t.Patient   == "Patient says they feel dizzy."
package diarization
