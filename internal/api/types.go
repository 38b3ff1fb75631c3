package api

import (
	"net/url"
)

// StoryType represents the different HN story listings.
type StoryType string

const (
	StoryTypeTop  StoryType = "top"
	StoryTypeNew  StoryType = "new"
	StoryTypeBest StoryType = "best"
	StoryTypeAsk  StoryType = "ask"
	StoryTypeShow StoryType = "show"
	StoryTypeJobs StoryType = "jobs"
)

// Item is an HN item as decoded from the Firebase API, before validation.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// Story is a validated item ready for rendering. URL is empty for self
// posts such as Ask HN.
type Story struct {
	ID           int
	Title        string
	URL          string
	Score        int
	Author       string
	CommentCount int

	// Text is the self-post body in HN's limited HTML.
	Text string
	Time int64
}

// ParseStory validates a decoded item against the story schema.
func ParseStory(it *Item) (Story, error) {
	if it == nil || it.ID <= 0 {
		return Story{}, &MalformedDataError{Field: "id", Reason: "is missing"}
	}
	if it.Deleted {
		return Story{}, &MalformedDataError{ID: it.ID, Field: "deleted", Reason: "is set"}
	}
	if it.Title == "" {
		return Story{}, &MalformedDataError{ID: it.ID, Field: "title", Reason: "is missing"}
	}
	if it.Score < 0 {
		return Story{}, &MalformedDataError{ID: it.ID, Field: "score", Reason: "is negative"}
	}
	if it.Descendants < 0 {
		return Story{}, &MalformedDataError{ID: it.ID, Field: "descendants", Reason: "is negative"}
	}
	if it.URL != "" {
		u, err := url.Parse(it.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return Story{}, &MalformedDataError{ID: it.ID, Field: "url", Reason: "is not an absolute http(s) URL"}
		}
	}

	return Story{
		ID:           it.ID,
		Title:        it.Title,
		URL:          it.URL,
		Score:        it.Score,
		Author:       it.By,
		CommentCount: it.Descendants,
		Text:         it.Text,
		Time:         it.Time,
	}, nil
}
