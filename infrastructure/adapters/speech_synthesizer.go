package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/config"
)

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type speechSynthesizer struct {
	ContentFetcher
	logger      outbound.LoggerPort
	voiceConfig *config.VoiceConfig
}

func NewSpeechSynthesizer(contentFetcher ContentFetcher, voiceConfig *config.VoiceConfig,
	logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		voiceConfig:    voiceConfig,
	}
}

// Synthesize posts the narration script to the voice backend and
// returns the encoded audio. The backend rejects empty text, so that
// case is caught before spending a network round trip.
func (s *speechSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, error) {
	if strings.TrimSpace(req.Script) == "" {
		return nil, errors.New("narration script is empty")
	}

	httpReq, err := s.getRequest(ctx, req.Script, req.VoiceID)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to construct the HTTP request for speech synthesis", map[string]interface{}{
			"voice_id": req.VoiceID,
		})
		return nil, err
	}

	return s.FetchContent(httpReq)
}

func (s *speechSynthesizer) getRequest(ctx context.Context, script string, voiceID string) (*http.Request, error) {
	reqBody := ttsRequest{
		Text:    script,
		ModelId: s.voiceConfig.ModelId,
		VoiceSettings: voiceSettings{
			Stability:       s.voiceConfig.Stability,
			SimilarityBoost: s.voiceConfig.SimilarityBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.voiceConfig.ApiUrl+"/"+voiceID, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "audio/mpeg")
	req.Header.Add("xi-api-key", s.voiceConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}
