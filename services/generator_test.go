package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slideforge/models"
)

const modelDeckJSON = `{
  "title": "Ocean Currents",
  "slides": [
    {"slideTitle": "Thermohaline Circulation", "points": ["Deep water forms in the North Atlantic", "Salinity and temperature drive the pump"], "imageKeyword": "ocean waves"},
    {"slideTitle": "El Nino Cycles", "points": ["Trade winds weaken across the Pacific"], "imageKeyword": "pacific ocean"}
  ]
}`

// swapModel replaces the model hook and returns a restore func.
func swapModel(output string, err error) func() {
	prev := invokeModel
	invokeModel = func(context.Context, string) (string, error) { return output, err }
	return func() { invokeModel = prev }
}

type staticResolver struct{ prefix string }

func (r staticResolver) Resolve(keyword string) string {
	return r.prefix + keyword
}

func TestDraftDeckParsesFencedJSON(t *testing.T) {
	defer swapModel("```json\n"+modelDeckJSON+"\n```", nil)()

	deck, err := DraftDeck(context.Background(), "source material", 2)
	if err != nil {
		t.Fatalf("Expected fenced JSON to parse, got %v", err)
	}
	if deck.Title != "Ocean Currents" {
		t.Errorf("Expected title Ocean Currents, got %q", deck.Title)
	}
	if len(deck.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(deck.Slides))
	}
	if deck.Slides[0].ImageKeyword != "ocean waves" {
		t.Errorf("Expected imageKeyword preserved, got %q", deck.Slides[0].ImageKeyword)
	}
}

func TestDraftDeckRepairsTrailingCommas(t *testing.T) {
	broken := `{"title": "Ocean Currents", "slides": [{"slideTitle": "One", "points": ["a", "b",],}]}`
	defer swapModel(broken, nil)()

	deck, err := DraftDeck(context.Background(), "source material", 4)
	if err != nil {
		t.Fatalf("Expected repairable JSON to parse, got %v", err)
	}
	if len(deck.Slides) != 1 || len(deck.Slides[0].Points) != 2 {
		t.Errorf("Expected repaired slide with 2 points, got %+v", deck.Slides)
	}
}

func TestDraftDeckRejectsGarbage(t *testing.T) {
	defer swapModel("I cannot produce a deck for that.", nil)()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrInvalidAIResponse) {
		t.Errorf("Expected ErrInvalidAIResponse, got %v", err)
	}
}

func TestDraftDeckRejectsEmptyOutput(t *testing.T) {
	defer swapModel("```json\n```", nil)()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrInvalidAIResponse) {
		t.Fatalf("Expected ErrInvalidAIResponse, got %v", err)
	}
	if !strings.Contains(err.Error(), "empty response") {
		t.Errorf("Expected empty response reason, got %v", err)
	}
}

func TestDraftDeckRejectsMissingTitle(t *testing.T) {
	defer swapModel(`{"title": "", "slides": [{"slideTitle": "S", "points": ["a"]}]}`, nil)()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrInvalidAIResponse) || !strings.Contains(err.Error(), "missing deck title") {
		t.Errorf("Expected missing deck title rejection, got %v", err)
	}
}

func TestDraftDeckRejectsMissingSlides(t *testing.T) {
	defer swapModel(`{"title": "T", "slides": []}`, nil)()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrInvalidAIResponse) || !strings.Contains(err.Error(), "no slides") {
		t.Errorf("Expected no slides rejection, got %v", err)
	}
}

func TestDraftDeckRejectsSlideWithoutPoints(t *testing.T) {
	defer swapModel(`{"title": "T", "slides": [{"slideTitle": "S"}]}`, nil)()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrInvalidAIResponse) || !strings.Contains(err.Error(), "slide 0 missing points") {
		t.Errorf("Expected missing points rejection, got %v", err)
	}
}

func TestDraftDeckRejectsBlankSlideTitle(t *testing.T) {
	defer swapModel(`{"title": "T", "slides": [{"slideTitle": "  ", "points": ["a"]}]}`, nil)()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrInvalidAIResponse) || !strings.Contains(err.Error(), "missing slideTitle") {
		t.Errorf("Expected blank slideTitle rejection, got %v", err)
	}
}

func TestDraftDeckTruncatesExtraSlides(t *testing.T) {
	defer swapModel(modelDeckJSON, nil)()

	deck, err := DraftDeck(context.Background(), "source material", 1)
	if err != nil {
		t.Fatalf("Expected parse to succeed, got %v", err)
	}
	if len(deck.Slides) != 1 {
		t.Errorf("Expected deck truncated to 1 slide, got %d", len(deck.Slides))
	}
}

func TestDraftDeckTruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("t", models.MaxTitleLen+50)
	defer swapModel(`{"title": "`+long+`", "slides": [{"slideTitle": "S", "points": ["a"]}]}`, nil)()

	deck, err := DraftDeck(context.Background(), "source material", 4)
	if err != nil {
		t.Fatalf("Expected parse to succeed, got %v", err)
	}
	if len([]rune(deck.Title)) != models.MaxTitleLen {
		t.Errorf("Expected title truncated to %d runes, got %d", models.MaxTitleLen, len([]rune(deck.Title)))
	}
}

func TestDraftDeckWrapsModelErrors(t *testing.T) {
	defer swapModel("", errors.New("upstream unavailable"))()

	_, err := DraftDeck(context.Background(), "source material", 4)
	if !errors.Is(err, ErrService) {
		t.Errorf("Expected ErrService, got %v", err)
	}
}

func TestDraftDeckPromptCarriesContent(t *testing.T) {
	var prompt string
	prev := invokeModel
	invokeModel = func(_ context.Context, p string) (string, error) {
		prompt = p
		return modelDeckJSON, nil
	}
	defer func() { invokeModel = prev }()

	if _, err := DraftDeck(context.Background(), "Fusion reactors confine plasma with magnets.", 3); err != nil {
		t.Fatalf("Expected draft to succeed, got %v", err)
	}
	if !strings.Contains(prompt, "Fusion reactors confine plasma with magnets.") {
		t.Errorf("Expected prompt to carry the source material")
	}
	if !strings.Contains(prompt, "Produce exactly 3 slides") {
		t.Errorf("Expected prompt to pin the slide count, got %q", prompt)
	}
}

func TestDraftDeckFromTopicPrompt(t *testing.T) {
	var prompt string
	prev := invokeModel
	invokeModel = func(_ context.Context, p string) (string, error) {
		prompt = p
		return modelDeckJSON, nil
	}
	defer func() { invokeModel = prev }()

	if _, err := DraftDeckFromTopic(context.Background(), "quantum computing", 4); err != nil {
		t.Fatalf("Expected topic draft to succeed, got %v", err)
	}
	if !strings.Contains(prompt, "Topic: quantum computing") {
		t.Errorf("Expected prompt to carry the topic, got %q", prompt)
	}
	if !strings.Contains(prompt, "Produce exactly 4 slides") {
		t.Errorf("Expected prompt to pin the slide count")
	}
}

func TestAttachImagesFillsURLsInOrder(t *testing.T) {
	prev := imageResolver
	imageResolver = staticResolver{prefix: "https://img.test/"}
	defer func() { imageResolver = prev }()

	deck := &models.SlideDeck{
		Title: "T",
		Slides: []models.Slide{
			{SlideTitle: "A", Points: []string{"a"}, ImageKeyword: "alpha"},
			{SlideTitle: "B", Points: []string{"b"}},
			{SlideTitle: "C", Points: []string{"c"}, ImageKeyword: "gamma"},
		},
	}
	AttachImages(context.Background(), deck)

	if deck.Slides[0].ImageURL != "https://img.test/alpha" {
		t.Errorf("Expected resolved URL on slide 0, got %q", deck.Slides[0].ImageURL)
	}
	if deck.Slides[1].ImageURL != "" {
		t.Errorf("Expected keywordless slide untouched, got %q", deck.Slides[1].ImageURL)
	}
	if deck.Slides[2].ImageURL != "https://img.test/gamma" {
		t.Errorf("Expected resolved URL on slide 2, got %q", deck.Slides[2].ImageURL)
	}
}

func TestGenerateDeckAttachesImages(t *testing.T) {
	defer swapModel(modelDeckJSON, nil)()
	prev := imageResolver
	imageResolver = staticResolver{prefix: "https://img.test/"}
	defer func() { imageResolver = prev }()

	deck, err := GenerateDeck(context.Background(), "source material", 2)
	if err != nil {
		t.Fatalf("Expected generation to succeed, got %v", err)
	}
	if deck.Slides[0].ImageURL != "https://img.test/ocean waves" {
		t.Errorf("Expected image attached from keyword, got %q", deck.Slides[0].ImageURL)
	}
}

func TestSetImageResolverIgnoresNil(t *testing.T) {
	prev := imageResolver
	defer func() { imageResolver = prev }()

	SetImageResolver(nil)
	if imageResolver == nil {
		t.Errorf("Expected nil resolver to be ignored")
	}
}

func TestCleanModelOutput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"```JSON\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"  {\"a\": 1}  ", "{\"a\": 1}"},
		{"plain text", "plain text"},
	}
	for _, c := range cases {
		if got := cleanModelOutput(c.in); got != c.want {
			t.Errorf("Expected %q, got %q", c.want, got)
		}
	}
}
