package structs

import "slideforge/models"

// Source text is bounded to keep prompts inside model context limits.
const (
	MinContentLen = 50
	MaxContentLen = 50000
)

type DeckFromTextRequest struct {
	Content    string `json:"content" binding:"required"`
	Title      string `json:"title"`
	SlideCount int    `json:"slideCount" binding:"required,min=1,max=20"`
}

type DeckFromTopicRequest struct {
	Topic      string `json:"topic" binding:"required"`
	SlideCount int    `json:"slideCount" binding:"required,min=1,max=20"`
}

type DeckFromURLRequest struct {
	URL        string `json:"url" binding:"required"`
	SlideCount int    `json:"slideCount" binding:"required,min=1,max=20"`
}

type ExportDeckRequest struct {
	Deck  models.SlideDeck `json:"deck" binding:"required"`
	Theme string           `json:"theme"`
}

// DeckResponse is returned by every generation endpoint. ID is set only when
// the deck was persisted for a signed-in user; Source reports whether the
// generative path or the deterministic fallback produced the deck.
type DeckResponse struct {
	ID     string            `json:"id,omitempty"`
	Source string            `json:"source"`
	Deck   *models.SlideDeck `json:"deck"`
}
