package inbound

import (
	"context"

	"generate-briefing-video/domain"
)

type GenerateBriefingParams struct {
	Briefing domain.Briefing
}

type GenerateBriefingResult struct {
	BriefingID    string
	VideoFileName string
	VideoKey      string
	VideoRegion   string
	Duration      float64
	SlideCount    int
}

// BriefingPipelinePort is the single entry point of the service: turn
// one briefing input into one narrated video, synchronously from the
// caller's perspective.
type BriefingPipelinePort interface {
	GenerateBriefing(ctx context.Context, params GenerateBriefingParams) (*GenerateBriefingResult, error)
}
