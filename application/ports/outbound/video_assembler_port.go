package outbound

import (
	"context"

	"generate-briefing-video/domain"
)

type AssembleVideoRequest struct {
	Slides         []domain.SlideFile
	AudioFileName  string
	OutputFileName string
}

type AssembleVideoResponse struct {
	FileName string
	Duration float64
}

// VideoAssemblerPort concatenates the slide frames, reconciles the
// visual timeline against the audio track's measured duration, attaches
// the audio and encodes the final artifact. The output file appears at
// OutputFileName only on success.
type VideoAssemblerPort interface {
	Assemble(ctx context.Context, req AssembleVideoRequest) (*AssembleVideoResponse, error)
}
