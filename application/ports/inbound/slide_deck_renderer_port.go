package inbound

import (
	"context"

	"generate-briefing-video/domain"
)

// SlideDeckRendererPort rasterizes a planned deck into dir. Rendered
// slides arrive on the first channel in no particular order; fatal
// failures arrive on the second. Both channels close when the deck is
// done.
type SlideDeckRendererPort interface {
	RenderDeck(ctx context.Context, slides []domain.Slide, dir string) (<-chan domain.SlideFile, <-chan error)
}
