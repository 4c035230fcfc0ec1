package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// VoiceConfig points the pipeline at its text-to-speech backend. The
// voice is a fixed deployment setting, not a per-request choice.
type VoiceConfig struct {
	ApiUrl          string
	ApiKey          string
	VoiceID         string
	ModelId         string
	Stability       float64
	SimilarityBoost float64
	Timeout         time.Duration
}

func GetVoiceConfig() (*VoiceConfig, error) {
	apiUrl := os.Getenv("TTS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("TTS_API_URL must be set")
	}
	apiKey := os.Getenv("TTS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TTS_API_KEY must be set")
	}

	cfg := &VoiceConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		VoiceID:         getEnv("TTS_VOICE_ID", "en-US-AndrewMultilingualNeural"),
		ModelId:         getEnv("TTS_MODEL_ID", "neural_multilingual_v2"),
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Timeout:         90 * time.Second,
	}

	if raw := os.Getenv("TTS_STABILITY"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTS_STABILITY: %w", err)
		}
		cfg.Stability = val
	}
	if raw := os.Getenv("TTS_SIMILARITY_BOOST"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTS_SIMILARITY_BOOST: %w", err)
		}
		cfg.SimilarityBoost = val
	}
	timeoutSeconds, err := getEnvInt("TTS_TIMEOUT_SECONDS", int(cfg.Timeout/time.Second))
	if err != nil {
		return nil, err
	}
	if timeoutSeconds <= 0 {
		return nil, fmt.Errorf("TTS_TIMEOUT_SECONDS must be positive")
	}
	cfg.Timeout = time.Duration(timeoutSeconds) * time.Second

	return cfg, nil
}
