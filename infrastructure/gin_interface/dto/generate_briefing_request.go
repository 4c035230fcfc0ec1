package dto

import (
	"generate-briefing-video/domain"
)

// GenerateBriefingRequest is the wire shape of a briefing input. Topics
// are an ordered array rather than a JSON object: the briefing is an
// ordered mapping and object key order does not survive decoding.
type GenerateBriefingRequest struct {
	Topics []TopicRequest `json:"topics" binding:"required"`
}

type TopicRequest struct {
	ID    string            `json:"id" binding:"required"`
	Items []NewsItemRequest `json:"items"`
}

type NewsItemRequest struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

func (r GenerateBriefingRequest) ToDomain() domain.Briefing {
	topics := make([]domain.Topic, 0, len(r.Topics))
	for _, topic := range r.Topics {
		items := make([]domain.NewsItem, 0, len(topic.Items))
		for _, item := range topic.Items {
			items = append(items, domain.NewsItem{
				Title:  item.Title,
				Source: item.Source,
			})
		}
		topics = append(topics, domain.Topic{
			ID:    topic.ID,
			Items: items,
		})
	}
	return domain.Briefing{Topics: topics}
}

type GenerateBriefingResponse struct {
	BriefingID  string  `json:"briefing_id"`
	VideoFile   string  `json:"video_file"`
	VideoKey    string  `json:"video_key,omitempty"`
	VideoRegion string  `json:"video_region,omitempty"`
	Duration    float64 `json:"duration"`
	SlideCount  int     `json:"slide_count"`
}
