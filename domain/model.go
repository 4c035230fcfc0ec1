package domain

// NewsItem is one headline handed to the pipeline by the news
// collection collaborators. Fields beyond title and source are ignored.
type NewsItem struct {
	Title  string
	Source string
}

// Topic is one topic bucket of the briefing input, with its items in
// the order the caller ranked them.
type Topic struct {
	ID    string
	Items []NewsItem
}

// Briefing is the ordered topic -> items mapping consumed by one
// pipeline run. The pipeline never mutates it.
type Briefing struct {
	Topics []Topic
}

// LeadingItems returns the items that narration and slides actually
// use: the first limit items carrying a non-empty title. Items without
// a title are a data-quality defect and are skipped rather than
// failing the run.
func (t Topic) LeadingItems(limit int) []NewsItem {
	if limit <= 0 {
		return nil
	}
	items := make([]NewsItem, 0, limit)
	for _, item := range t.Items {
		if item.Title == "" {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items
}

// Slide is one visual beat of the briefing: a title, a de-emphasized
// subtitle and a fixed display duration in seconds.
type Slide struct {
	Title    string
	Subtitle string
	Duration float64
	Ordinal  int
}

// SlideFile is a slide that has been rasterized to disk.
type SlideFile struct {
	FileName string
	Slide
}

type SlideFilesAscByOrdinal []SlideFile

func (s SlideFilesAscByOrdinal) Len() int           { return len(s) }
func (s SlideFilesAscByOrdinal) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s SlideFilesAscByOrdinal) Less(i, j int) bool { return s[i].Ordinal < s[j].Ordinal }
