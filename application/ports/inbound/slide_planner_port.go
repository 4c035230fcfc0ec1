package inbound

import (
	"generate-briefing-video/domain"
)

// SlidePlannerPort derives the ordered slide deck from a briefing,
// using the same item-inclusion rules as the script composer so that
// slide order tracks narration order.
type SlidePlannerPort interface {
	Plan(briefing domain.Briefing) []domain.Slide
}
