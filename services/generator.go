package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"golang.org/x/sync/errgroup"

	"slideforge/config"
	"slideforge/images"
	"slideforge/models"
)

// GenerationSource tags which path produced a deck, so callers can persist
// and audit AI output separately from fallback output.
type GenerationSource string

const (
	SourceAI       GenerationSource = "ai"
	SourceFallback GenerationSource = "fallback"
)

// invokeModel is swapped out in tests.
var invokeModel = generateDefaultModelText

// imageResolver maps slide keywords to photo URLs.
var imageResolver images.Resolver = images.NewDefaultResolver()

// InitDeckService initializes the Gemini client using the API key from the config
func InitDeckService(cfg *config.Config) {
	var err error
	geminiClient, err = initGemini(cfg.Gemini.ApiKey)
	if err != nil {
		panic("Failed to initialize Gemini client: " + err.Error())
	}
	if cfg.Gemini.Model != "" {
		geminiModel = cfg.Gemini.Model
	}
}

// SetImageResolver replaces the keyword resolver, mainly for tests and for
// deployments with their own image catalog.
func SetImageResolver(r images.Resolver) {
	if r != nil {
		imageResolver = r
	}
}

// DraftDeck asks the model for a structured deck and validates the response
// shape. No images are attached yet. Transport failures wrap ErrService and
// malformed output wraps ErrInvalidAIResponse; the caller decides whether to
// fall back, so AI decks stay distinguishable from fallback decks.
func DraftDeck(ctx context.Context, content string, slideCount int) (*models.SlideDeck, error) {
	raw, err := invokeModel(ctx, buildDeckPrompt(content, slideCount))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	return parseDeckResponse(raw, slideCount)
}

// AttachImages resolves every slide's imageKeyword concurrently and fills in
// imageUrl. Slides without a keyword are left untouched; slide order is
// preserved because each goroutine writes only its own index.
func AttachImages(ctx context.Context, deck *models.SlideDeck) {
	g, _ := errgroup.WithContext(ctx)
	for i := range deck.Slides {
		if deck.Slides[i].ImageKeyword == "" {
			continue
		}
		i := i
		g.Go(func() error {
			deck.Slides[i].ImageURL = imageResolver.Resolve(deck.Slides[i].ImageKeyword)
			return nil
		})
	}
	g.Wait()
}

// GenerateDeck runs the full generative path for prepared content: draft the
// deck, then attach images.
func GenerateDeck(ctx context.Context, content string, slideCount int) (*models.SlideDeck, error) {
	deck, err := DraftDeck(ctx, content, slideCount)
	if err != nil {
		return nil, err
	}
	AttachImages(ctx, deck)
	return deck, nil
}

// DraftDeckFromTopic asks the model for a deck about a bare topic string,
// with the model supplying the substance. No images are attached yet.
func DraftDeckFromTopic(ctx context.Context, topic string, slideCount int) (*models.SlideDeck, error) {
	raw, err := invokeModel(ctx, buildTopicPrompt(topic, slideCount))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	return parseDeckResponse(raw, slideCount)
}

// GenerateDeckFromTopic runs the full generative path for a bare topic.
func GenerateDeckFromTopic(ctx context.Context, topic string, slideCount int) (*models.SlideDeck, error) {
	deck, err := DraftDeckFromTopic(ctx, topic, slideCount)
	if err != nil {
		return nil, err
	}
	AttachImages(ctx, deck)
	return deck, nil
}

const deckJSONShape = `{
  "title": "Deck Title",
  "slides": [
    {
      "slideTitle": "Slide Title",
      "points": ["First bullet point", "Second bullet point"],
      "imageKeyword": "two to four words"
    }
  ]
}`

func buildDeckPrompt(content string, slideCount int) string {
	return fmt.Sprintf(`You are an expert presentation designer. Convert the source material below into a slide deck.

Return ONLY strict JSON matching exactly this shape, with no commentary and no Markdown fences:
%s

Rules:
- Produce exactly %d slides.
- Give each slide 4 to 7 substantive bullet points of 15 to 30 words each. Be specific and quantified; never write generic filler.
- Give each slide an imageKeyword of 2 to 4 words describing a fitting photograph.
- Keep the deck title short and descriptive.

Source material:
%s`, deckJSONShape, slideCount, content)
}

func buildTopicPrompt(topic string, slideCount int) string {
	return fmt.Sprintf(`You are an expert presentation designer. Create a slide deck about the topic below, drawing on your own knowledge of it.

Return ONLY strict JSON matching exactly this shape, with no commentary and no Markdown fences:
%s

Rules:
- Produce exactly %d slides.
- Give each slide 4 to 7 substantive bullet points of 15 to 30 words each. Be specific and quantified; never write generic filler.
- Give each slide an imageKeyword of 2 to 4 words describing a fitting photograph.
- Keep the deck title short and descriptive.

Topic: %s`, deckJSONShape, slideCount, topic)
}

// parseDeckResponse turns raw model output into a SlideDeck. Code fences are
// stripped, the JSON is parsed (with one repair attempt if the first parse
// fails), and structurally broken decks are rejected rather than patched.
func parseDeckResponse(raw string, slideCount int) (*models.SlideDeck, error) {
	cleaned := cleanModelOutput(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidAIResponse)
	}

	var deck models.SlideDeck
	if err := json.Unmarshal([]byte(cleaned), &deck); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(cleaned)
		if repairErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAIResponse, err)
		}
		if err := json.Unmarshal([]byte(repaired), &deck); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAIResponse, err)
		}
		log.Println("repaired malformed deck JSON from model")
	}

	if strings.TrimSpace(deck.Title) == "" {
		return nil, fmt.Errorf("%w: missing deck title", ErrInvalidAIResponse)
	}
	if len(deck.Slides) == 0 {
		return nil, fmt.Errorf("%w: no slides", ErrInvalidAIResponse)
	}
	for i := range deck.Slides {
		if strings.TrimSpace(deck.Slides[i].SlideTitle) == "" {
			return nil, fmt.Errorf("%w: slide %d missing slideTitle", ErrInvalidAIResponse, i)
		}
		if deck.Slides[i].Points == nil {
			return nil, fmt.Errorf("%w: slide %d missing points", ErrInvalidAIResponse, i)
		}
	}

	if slideCount > 0 && len(deck.Slides) > slideCount {
		deck.Slides = deck.Slides[:slideCount]
	}
	if len(deck.Slides) > models.MaxSlides {
		deck.Slides = deck.Slides[:models.MaxSlides]
	}
	if runes := []rune(deck.Title); len(runes) > models.MaxTitleLen {
		deck.Title = string(runes[:models.MaxTitleLen])
	}
	return &deck, nil
}
