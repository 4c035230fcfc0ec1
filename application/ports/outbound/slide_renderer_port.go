package outbound

import (
	"generate-briefing-video/domain"
)

// SlideRendererPort rasterizes a single slide into dir and returns the
// written file name. Identical slides produce identical pixel content.
type SlideRendererPort interface {
	Render(slide domain.Slide, dir string) (string, error)
}
