package services

import (
	"fmt"
	"strings"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/domain"
)

const (
	titleSlideHeading  = "Daily News Intelligence"
	titleSlideSubtitle = "Your Personal Briefing"
	maxTitleChars      = 50
)

type slidePlanner struct {
	itemsPerTopic     int
	titleSlideSeconds float64
	topicSlideSeconds float64
	itemSlideSeconds  float64
}

func NewSlidePlanner(itemsPerTopic int, titleSlideSeconds, topicSlideSeconds, itemSlideSeconds float64) inbound.SlidePlannerPort {
	return &slidePlanner{
		itemsPerTopic:     itemsPerTopic,
		titleSlideSeconds: titleSlideSeconds,
		topicSlideSeconds: topicSlideSeconds,
		itemSlideSeconds:  itemSlideSeconds,
	}
}

// Plan emits the deck in narration order: one title slide, then per
// non-empty topic a header slide followed by its highlighted items.
func (p *slidePlanner) Plan(briefing domain.Briefing) []domain.Slide {
	slides := []domain.Slide{{
		Title:    titleSlideHeading,
		Subtitle: titleSlideSubtitle,
		Duration: p.titleSlideSeconds,
	}}

	for _, topic := range briefing.Topics {
		items := topic.LeadingItems(p.itemsPerTopic)
		if len(items) == 0 {
			continue
		}
		slides = append(slides, domain.Slide{
			Title:    strings.ToUpper(displayTopic(topic.ID)),
			Subtitle: fmt.Sprintf("%d Key Updates", len(topic.Items)),
			Duration: p.topicSlideSeconds,
		})
		for _, item := range items {
			slides = append(slides, domain.Slide{
				Title:    truncateTitle(item.Title),
				Subtitle: item.Source,
				Duration: p.itemSlideSeconds,
			})
		}
	}

	for i := range slides {
		slides[i].Ordinal = i
	}

	return slides
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleChars {
		return title
	}
	return string(runes[:maxTitleChars]) + "..."
}
