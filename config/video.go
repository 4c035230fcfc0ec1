package config

import (
	"fmt"
	"os"
	"strconv"
)

// VideoConfig carries every knob of one generation run: output
// location, slide geometry, timing and encoding rate. Defaults match
// the daily briefing product; env vars override.
type VideoConfig struct {
	OutputRoot        string
	Width             int
	Height            int
	FPS               int
	ItemsPerTopic     int
	TitleSlideSeconds float64
	TopicSlideSeconds float64
	ItemSlideSeconds  float64
	FontPath          string
	TitleFontSize     float64
	SubtitleFontSize  float64
}

func GetVideoConfig() (*VideoConfig, error) {
	cfg := &VideoConfig{
		OutputRoot:        getEnv("OUTPUT_ROOT", "media_output"),
		Width:             1280,
		Height:            720,
		FPS:               24,
		ItemsPerTopic:     2,
		TitleSlideSeconds: 3,
		TopicSlideSeconds: 3,
		ItemSlideSeconds:  4,
		FontPath:          os.Getenv("SLIDE_FONT_PATH"),
		TitleFontSize:     60,
		SubtitleFontSize:  40,
	}

	var err error
	if cfg.FPS, err = getEnvInt("VIDEO_FPS", cfg.FPS); err != nil {
		return nil, err
	}
	if cfg.ItemsPerTopic, err = getEnvInt("ITEMS_PER_TOPIC", cfg.ItemsPerTopic); err != nil {
		return nil, err
	}
	if cfg.ItemsPerTopic < 0 {
		return nil, fmt.Errorf("ITEMS_PER_TOPIC must not be negative")
	}
	if cfg.Width, err = getEnvInt("VIDEO_WIDTH", cfg.Width); err != nil {
		return nil, err
	}
	if cfg.Height, err = getEnvInt("VIDEO_HEIGHT", cfg.Height); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}
