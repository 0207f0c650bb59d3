// Package speech provides continuous speech-to-text for the detection core.
//
// The package abstracts a streaming recognition engine behind the Recognizer
// interface. The production implementation (WSRecognizer) streams PCM16 audio
// to a realtime ASR service over a WebSocket and surfaces incremental
// transcripts through callbacks. A Mock is provided for tests.
//
// Example usage:
//
//	rec := speech.NewWSRecognizer(speech.Config{
//	    APIKey: os.Getenv("ASR_API_KEY"),
//	})
//	rec.OnTranscript(func(text string, isFinal bool) {
//	    // Match keywords
//	})
//	if err := rec.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
package speech

import (
	"context"
)

// Recognizer is a continuous speech-to-text engine.
//
// Engines may terminate spontaneously (end of utterance, service policy).
// That is surfaced through the OnEnd callback, not OnError; callers decide
// whether to restart.
type Recognizer interface {
	// Available reports whether recognition can work on this host
	// (credentials present, engine reachable in principle).
	Available() bool

	// Start begins continuous recognition.
	// Returns ErrNotAllowed if the service rejects the credentials.
	Start(ctx context.Context) error

	// Stop halts recognition and releases the audio stream.
	// Safe to call multiple times; a user-initiated Stop does not
	// fire OnEnd.
	Stop() error

	// SendAudio streams PCM16 mono audio to the engine.
	SendAudio(pcm16 []byte) error

	// OnTranscript sets the callback for incremental transcription results.
	// text is the concatenation of the best transcript of every alternative
	// in the result.
	OnTranscript(fn func(text string, isFinal bool))

	// OnEnd sets the callback for spontaneous engine termination.
	OnEnd(fn func())

	// OnError sets the callback for engine errors.
	OnError(fn func(err error))
}
