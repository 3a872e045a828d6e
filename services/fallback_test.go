package services

import (
	"strings"
	"testing"

	"slideforge/content"
	"slideforge/models"
)

const solarText = `Solar adoption is rising quickly across every major market.
It grew at a record pace last year according to industry trackers.

Storage technology is the next frontier for the sector.
Battery costs fell forty percent over three years, unlocking new projects.

Grid operators face new challenges integrating variable generation.
Forecasting tools and flexible pricing help smooth the peaks.

Policy support remains a decisive factor in adoption curves.
Subsidies and permitting reform both shorten project timelines.

Community solar programs widen access beyond homeowners.
Shared arrays let renters buy clean power without installing panels.`

func TestBuildDeckFromTextSlideCountProperty(t *testing.T) {
	text := strings.Repeat("Solar energy adoption keeps accelerating worldwide. Panel prices fell again last year.\n\n", 6)

	for n := 1; n <= models.MaxSlides; n++ {
		deck := BuildDeckFromText(text, "", n)
		if len(deck.Slides) < 1 || len(deck.Slides) > n {
			t.Errorf("Expected between 1 and %d slides, got %d", n, len(deck.Slides))
		}
		if err := deck.Validate(); err != nil {
			t.Errorf("Expected fallback deck for n=%d to validate, got %v", n, err)
		}
	}
}

func TestBuildDeckFromTextScenario(t *testing.T) {
	deck := BuildDeckFromText(solarText, "", 5)

	if deck.Title != "Solar adoption is rising quickly across every major market." {
		t.Errorf("Expected deck title from the first sentence, got %q", deck.Title)
	}
	if len(deck.Slides) != 5 {
		t.Fatalf("Expected 5 slides from 5 paragraphs, got %d", len(deck.Slides))
	}
	if deck.Slides[0].SlideTitle != "Solar adoption is rising quickly across every major market" {
		t.Errorf("Expected first slide titled by its headline sentence, got %q", deck.Slides[0].SlideTitle)
	}
	for i, sl := range deck.Slides {
		if len(sl.Points) == 0 {
			t.Errorf("Expected slide %d to carry points", i)
		}
		if len(sl.Points) > 5 {
			t.Errorf("Expected at most 5 points on slide %d, got %d", i, len(sl.Points))
		}
	}
}

func TestBuildDeckFromTextTinyInput(t *testing.T) {
	deck := BuildDeckFromText("Too short.", "", 8)

	if len(deck.Slides) != 1 {
		t.Fatalf("Expected exactly one overview slide, got %d", len(deck.Slides))
	}
	if deck.Slides[0].SlideTitle != "Content Overview" {
		t.Errorf("Expected Content Overview slide, got %q", deck.Slides[0].SlideTitle)
	}
	if len(deck.Slides[0].Points) != 1 || !strings.HasSuffix(deck.Slides[0].Points[0], "...") {
		t.Errorf("Expected a single truncated point, got %v", deck.Slides[0].Points)
	}
}

func TestBuildDeckFromTextEmptyInput(t *testing.T) {
	deck := BuildDeckFromText("", "", 5)

	if deck.Title != "Generated Presentation" {
		t.Errorf("Expected placeholder title for empty input, got %q", deck.Title)
	}
	if len(deck.Slides) != 1 {
		t.Errorf("Expected one slide for empty input, got %d", len(deck.Slides))
	}
	if err := deck.Validate(); err != nil {
		t.Errorf("Expected deck from empty input to validate, got %v", err)
	}
}

func TestBuildDeckFromTextExplicitTitleWins(t *testing.T) {
	deck := BuildDeckFromText(solarText, "Renewables Briefing", 3)
	if deck.Title != "Renewables Briefing" {
		t.Errorf("Expected the explicit title to win, got %q", deck.Title)
	}
}

func TestBuildDeckFromTextClampsSlideCount(t *testing.T) {
	deck := BuildDeckFromText(solarText, "", 0)
	if len(deck.Slides) != 1 {
		t.Errorf("Expected slide count clamped up to 1, got %d", len(deck.Slides))
	}

	deck = BuildDeckFromText(solarText, "", 500)
	if len(deck.Slides) > models.MaxSlides {
		t.Errorf("Expected slide count clamped to %d, got %d", models.MaxSlides, len(deck.Slides))
	}
}

func fiberPage() *content.ScrapedPage {
	return &content.ScrapedPage{
		Title:       "Fiber Optics Explained",
		Description: "How light moves data across oceans.",
		Content: "Intro paragraph about fiber networks spanning continents today.\n\n" +
			"How Fiber Works\n\n" +
			"Light pulses encode bits inside thin strands of glass. Repeaters restore signal strength every eighty kilometers or so.\n\n" +
			"Capacity Planning\n\n" +
			"Carriers light additional wavelengths when demand grows. Dense wavelength multiplexing multiplies capacity on existing strands.",
		Headings: []content.Heading{
			{Level: 2, Text: "How Fiber Works"},
			{Level: 2, Text: "Capacity Planning"},
		},
	}
}

func TestBuildDeckFromPageFirstSlide(t *testing.T) {
	deck := BuildDeckFromPage(fiberPage(), 6)

	if deck.Title != "Fiber Optics Explained" {
		t.Errorf("Expected page title as deck title, got %q", deck.Title)
	}
	first := deck.Slides[0]
	if first.SlideTitle != "Fiber Optics Explained" {
		t.Errorf("Expected first slide titled by the page, got %q", first.SlideTitle)
	}
	if len(first.Points) != 1 || first.Points[0] != "How light moves data across oceans." {
		t.Errorf("Expected the description as the sole first point, got %v", first.Points)
	}
}

func TestBuildDeckFromPageHeadingSlides(t *testing.T) {
	deck := BuildDeckFromPage(fiberPage(), 6)

	if len(deck.Slides) < 3 {
		t.Fatalf("Expected heading slides after the first slide, got %d slides", len(deck.Slides))
	}
	if deck.Slides[1].SlideTitle != "How Fiber Works" {
		t.Errorf("Expected second slide titled by the first heading, got %q", deck.Slides[1].SlideTitle)
	}
	if deck.Slides[2].SlideTitle != "Capacity Planning" {
		t.Errorf("Expected third slide titled by the second heading, got %q", deck.Slides[2].SlideTitle)
	}
	if len(deck.Slides[1].Points) != 2 {
		t.Errorf("Expected two sentences under the first heading, got %v", deck.Slides[1].Points)
	}
	if !strings.HasPrefix(deck.Slides[1].Points[0], "Light pulses encode bits") {
		t.Errorf("Expected heading span sentences as points, got %v", deck.Slides[1].Points)
	}
}

func TestBuildDeckFromPageRespectsSlideCount(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6} {
		deck := BuildDeckFromPage(fiberPage(), n)
		if len(deck.Slides) > n {
			t.Errorf("Expected at most %d slides, got %d", n, len(deck.Slides))
		}
		if err := deck.Validate(); err != nil {
			t.Errorf("Expected page deck for n=%d to validate, got %v", n, err)
		}
	}
}

func TestBuildDeckFromPageListItems(t *testing.T) {
	page := &content.ScrapedPage{
		Title:       "Checklist",
		Description: "Things to verify before launch.",
		ListItems: []string{
			"Confirm backups restore cleanly on staging.",
			"Rotate credentials and retire unused keys.",
			"Review alert thresholds with the on-call team.",
			"Rehearse the rollback path end to end.",
			"Freeze schema migrations during the window.",
			"Verify third-party quota headroom.",
			"Update the status page templates.",
		},
	}

	deck := BuildDeckFromPage(page, 4)
	if len(deck.Slides) != 3 {
		t.Fatalf("Expected title slide plus two key point slides, got %d", len(deck.Slides))
	}
	if deck.Slides[1].SlideTitle != "Key Points 1" || deck.Slides[2].SlideTitle != "Key Points 2" {
		t.Errorf("Expected numbered key point slides, got %q and %q", deck.Slides[1].SlideTitle, deck.Slides[2].SlideTitle)
	}
	if len(deck.Slides[1].Points) != 4 || len(deck.Slides[2].Points) != 3 {
		t.Errorf("Expected items spread 4 then 3, got %d and %d", len(deck.Slides[1].Points), len(deck.Slides[2].Points))
	}
}

func TestBuildDeckFromPageUntitled(t *testing.T) {
	deck := BuildDeckFromPage(&content.ScrapedPage{}, 3)

	if deck.Title != "Untitled Page" {
		t.Errorf("Expected placeholder page title, got %q", deck.Title)
	}
	if len(deck.Slides) != 1 {
		t.Fatalf("Expected a single slide for an empty page, got %d", len(deck.Slides))
	}
	if deck.Slides[0].Points[0] != "Untitled Page" {
		t.Errorf("Expected the title reused as the only point, got %v", deck.Slides[0].Points)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First sentence. Second one! Third?")
	if len(got) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[1] != "Second one!" {
		t.Errorf("Expected %q, got %q", "Second one!", got[1])
	}
}

func TestSplitSentencesKeepsDecimals(t *testing.T) {
	got := splitSentences("Version 2.5 shipped today.")
	if len(got) != 1 {
		t.Errorf("Expected decimal point not to split the sentence, got %v", got)
	}
}

func TestSplitSentencesWithoutTerminator(t *testing.T) {
	got := splitSentences("no terminator at all")
	if len(got) != 1 || got[0] != "no terminator at all" {
		t.Errorf("Expected trailing fragment kept, got %v", got)
	}
}
