package outbound

import "context"

type SynthesizeSpeechRequest struct {
	Script  string
	VoiceID string
}

// SpeechSynthesizerPort turns a narration script into encoded audio
// via an external neural text-to-speech backend. The backend is a
// black box; a failure here is fatal for the whole run.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, req SynthesizeSpeechRequest) ([]byte, error)
}
