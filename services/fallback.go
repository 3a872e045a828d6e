package services

import (
	"fmt"
	"strings"

	"slideforge/content"
	"slideforge/models"
)

const (
	minParagraphLen    = 20
	maxPointsPerSlide  = 5
	minSentenceLen     = 10
	minPageSentenceLen = 20
	maxPageSentenceLen = 299
	sectionTruncateLen = 200
)

// BuildDeckFromText segments canonical text into at most slideCount slides
// with no model involvement. It is total: any input yields at least one
// slide, so the fallback path can never fail.
func BuildDeckFromText(text, deckTitle string, slideCount int) *models.SlideDeck {
	slideCount = clampSlideCount(slideCount)
	cleaned := content.CleanText(text)

	if deckTitle == "" {
		if first := firstSentence(cleaned); len(first) >= 10 && len(first) <= 99 {
			deckTitle = first
		} else {
			deckTitle = "Generated Presentation"
		}
	}

	paragraphs := splitParagraphs(cleaned)

	var slides []models.Slide
	if len(paragraphs) > 0 {
		perSlide := (len(paragraphs) + slideCount - 1) / slideCount
		for start := 0; start < len(paragraphs) && len(slides) < slideCount; start += perSlide {
			end := start + perSlide
			if end > len(paragraphs) {
				end = len(paragraphs)
			}
			slides = append(slides, buildTextSlide(paragraphs[start:end], len(slides)+1))
		}
	}

	if len(slides) == 0 {
		runes := []rune(cleaned)
		if len(runes) > sectionTruncateLen {
			runes = runes[:sectionTruncateLen]
		}
		slides = []models.Slide{{
			SlideTitle: "Content Overview",
			Points:     []string{string(runes) + "..."},
		}}
	}

	return &models.SlideDeck{Title: deckTitle, Slides: slides}
}

// buildTextSlide derives one slide from a group of paragraphs. The title is
// the first sentence of the first paragraph when it reads like a headline
// (10 to 99 characters), otherwise a numbered section label.
func buildTextSlide(group []string, n int) models.Slide {
	title := fmt.Sprintf("Section %d", n)
	if first := firstSentence(group[0]); len(first) >= 10 && len(first) <= 99 {
		title = strings.TrimSuffix(first, ".")
	}

	var points []string
	for _, para := range group {
		for _, s := range splitSentences(para) {
			if len(s) > minSentenceLen && len(points) < maxPointsPerSlide {
				points = append(points, s)
			}
		}
	}
	return models.Slide{SlideTitle: title, Points: points}
}

// BuildDeckFromPage builds a deck from scraped page structure: a title slide
// first, then heading-anchored slides, then list-item slides, then leftover
// paragraph sections, truncated to slideCount.
func BuildDeckFromPage(page *content.ScrapedPage, slideCount int) *models.SlideDeck {
	slideCount = clampSlideCount(slideCount)

	deckTitle := strings.TrimSpace(page.Title)
	if deckTitle == "" {
		deckTitle = "Untitled Page"
	}

	firstPoint := strings.TrimSpace(page.Description)
	if firstPoint == "" {
		firstPoint = firstContentLine(page.Content)
	}
	if firstPoint == "" {
		firstPoint = deckTitle
	}
	slides := []models.Slide{{SlideTitle: deckTitle, Points: []string{firstPoint}}}

	slides = appendHeadingSlides(slides, page, slideCount)
	slides = appendListItemSlides(slides, page.ListItems, slideCount)
	slides = appendSectionSlides(slides, page.Content, slideCount)

	if len(slides) > slideCount {
		slides = slides[:slideCount]
	}
	return &models.SlideDeck{Title: deckTitle, Slides: slides}
}

// appendHeadingSlides adds one slide per heading found in the page content,
// pulling points from the text span between that heading and the next.
func appendHeadingSlides(slides []models.Slide, page *content.ScrapedPage, slideCount int) []models.Slide {
	type anchor struct {
		text string
		pos  int
	}
	var anchors []anchor
	searchFrom := 0
	for _, h := range page.Headings {
		idx := strings.Index(page.Content[searchFrom:], h.Text)
		if idx < 0 {
			continue
		}
		pos := searchFrom + idx
		anchors = append(anchors, anchor{text: h.Text, pos: pos})
		searchFrom = pos + len(h.Text)
	}

	for i, a := range anchors {
		if len(slides) >= slideCount {
			break
		}
		spanEnd := len(page.Content)
		if i+1 < len(anchors) {
			spanEnd = anchors[i+1].pos
		}
		span := page.Content[a.pos+len(a.text) : spanEnd]

		var points []string
		for _, s := range splitSentences(span) {
			if len(s) >= minPageSentenceLen && len(s) <= maxPageSentenceLen && len(points) < maxPointsPerSlide {
				points = append(points, s)
			}
		}
		if len(points) == 0 {
			continue
		}
		slides = append(slides, models.Slide{SlideTitle: a.text, Points: points})
	}
	return slides
}

// appendListItemSlides spreads list items evenly over "Key Points" slides,
// at most five items each.
func appendListItemSlides(slides []models.Slide, items []string, slideCount int) []models.Slide {
	if len(slides) >= slideCount || len(items) == 0 {
		return slides
	}
	remaining := slideCount - len(slides)
	numSlides := (len(items) + maxPointsPerSlide - 1) / maxPointsPerSlide
	if numSlides > remaining {
		numSlides = remaining
	}
	perSlide := (len(items) + numSlides - 1) / numSlides
	if perSlide > maxPointsPerSlide {
		perSlide = maxPointsPerSlide
	}

	n := 1
	for start := 0; start < len(items) && n <= numSlides; start += perSlide {
		end := start + perSlide
		if end > len(items) {
			end = len(items)
		}
		slides = append(slides, models.Slide{
			SlideTitle: fmt.Sprintf("Key Points %d", n),
			Points:     items[start:end],
		})
		n++
	}
	return slides
}

// appendSectionSlides fills any remaining quota with paragraph pairs.
func appendSectionSlides(slides []models.Slide, text string, slideCount int) []models.Slide {
	if len(slides) >= slideCount {
		return slides
	}
	paragraphs := splitParagraphs(text)
	n := 1
	for start := 0; start < len(paragraphs) && len(slides) < slideCount; start += 2 {
		end := start + 2
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		points := make([]string, 0, 2)
		for _, p := range paragraphs[start:end] {
			points = append(points, truncateWithEllipsis(p, sectionTruncateLen))
		}
		slides = append(slides, models.Slide{
			SlideTitle: fmt.Sprintf("Section %d", n),
			Points:     points,
		})
		n++
	}
	return slides
}

func clampSlideCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > models.MaxSlides {
		return models.MaxSlides
	}
	return n
}

// splitParagraphs breaks canonical text on blank lines and drops fragments
// under 20 characters.
func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if len(p) >= minParagraphLen {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences breaks text on sentence terminators followed by whitespace
// or end of input.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(b.String()); s != "" {
					sentences = append(sentences, s)
				}
				b.Reset()
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func firstSentence(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	return sentences[0]
}

func firstContentLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// truncateWithEllipsis shortens text to limit runes, marking the cut.
func truncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
