package services

import (
	"strings"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/domain"
)

const (
	introSentence = "Welcome to your daily intelligence briefing."
	outroSentence = "That's all for today. Stay informed."
)

type scriptComposer struct {
	itemsPerTopic int
}

func NewScriptComposer(itemsPerTopic int) inbound.ScriptComposerPort {
	return &scriptComposer{
		itemsPerTopic: itemsPerTopic,
	}
}

// Compose walks the briefing in input order and emits one sentence per
// narrated beat. Topics with no usable items contribute nothing; an
// empty briefing still yields intro plus outro.
func (s *scriptComposer) Compose(briefing domain.Briefing) string {
	sentences := []string{introSentence}

	for _, topic := range briefing.Topics {
		items := topic.LeadingItems(s.itemsPerTopic)
		if len(items) == 0 {
			continue
		}
		sentences = append(sentences, "In "+displayTopic(topic.ID)+":")
		for _, item := range items {
			sentences = append(sentences, item.Title+".")
		}
	}

	sentences = append(sentences, outroSentence)

	return strings.Join(sentences, " ")
}

// displayTopic turns a topic identifier into its spoken form. This is
// presentation only; the briefing keeps the raw identifier.
func displayTopic(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
