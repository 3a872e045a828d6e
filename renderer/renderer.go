package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"strconv"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"
	"golang.org/x/sync/errgroup"

	"slideforge/images"
	"slideforge/models"
)

// Canvas geometry for the 16:9 widescreen layout, in EMU.
const (
	emuPerInch = 914400

	slideWidthEMU   = int64(10.0 * emuPerInch)
	slideHeightEMU  = int64(5.625 * emuPerInch)
	marginEMU       = int64(0.4 * emuPerInch)
	contentWidthEMU = int64(9.2 * emuPerInch)

	splitImageWidthEMU = int64(4.1 * emuPerInch)
	splitTextWidthEMU  = int64(5.1 * emuPerInch)

	// Font sizes (pt)
	fontDeckTitle   = 40
	fontOpening     = 36
	fontSlideTitle  = 26
	fontSplitTitle  = 22
	fontDominant    = 28
	fontSummary     = 28
	fontSummaryBody = 15
	fontSubtitle    = 16
	fontBody        = 14
	fontSplitBody   = 13
	fontSmall       = 12
	fontBadge       = 10

	prefetchParallelism = 4
)

// helper: create a solid fill
func solidFill(argbColor string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argbColor))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// helper: set paragraph alignment to right
func alignRight(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
}

// DeckRenderer turns a validated SlideDeck into a PPTX document.
type DeckRenderer struct {
	fetcher images.Fetcher
}

// NewDeckRenderer creates a renderer. A nil fetcher falls back to the
// default HTTP image fetcher.
func NewDeckRenderer(fetcher images.Fetcher) *DeckRenderer {
	if fetcher == nil {
		fetcher = images.NewHTTPFetcher()
	}
	return &DeckRenderer{fetcher: fetcher}
}

// Render validates the deck, resolves the theme and writes PPTX bytes. The
// output always holds len(deck.Slides)+2 slides: title slide, one slide per
// deck slide, closing slide.
func (r *DeckRenderer) Render(ctx context.Context, deck *models.SlideDeck, themeName string) ([]byte, error) {
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("deck failed validation: %w", err)
	}
	th := ByName(themeName)
	assets := r.prefetchImages(ctx, deck)

	p := ppt.New()
	p.GetDocumentProperties().Title = deck.Title
	p.GetDocumentProperties().Creator = "SlideForge"

	r.addTitleSlide(p, th, deck.Title)

	total := len(deck.Slides)
	for i, sl := range deck.Slides {
		img := assets[i]
		layout := SelectLayout(i, total, img != nil, len(sl.Points))
		slide := p.CreateSlide()
		switch layout {
		case LayoutFullImageTitle:
			renderFullImageTitle(slide, th, sl, img)
		case LayoutSplitImageLeft:
			renderSplitImage(slide, th, sl, img, true)
		case LayoutSplitImageRight:
			renderSplitImage(slide, th, sl, img, false)
		case LayoutImageDominant:
			renderImageDominant(slide, th, sl, img)
		case LayoutCleanSummary:
			renderCleanSummary(slide, th, sl)
		default:
			renderGradientBullets(slide, th, sl)
		}
		overImage := img != nil && layout != LayoutCleanSummary && layout != LayoutGradientBullets && layout != LayoutSplitImageLeft
		addPageBadge(slide, th, i+2, overImage)
	}

	r.addClosingSlide(p, th, deck.Title)

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("create pptx writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pptx: %w", err)
	}
	return buf.Bytes(), nil
}

// prefetchImages downloads and decodes every slide image concurrently,
// preserving slide order by index. A failed fetch or decode logs and leaves
// a nil slot so that slide demotes to its non-image layout; image trouble
// never fails a render.
func (r *DeckRenderer) prefetchImages(ctx context.Context, deck *models.SlideDeck) []image.Image {
	assets := make([]image.Image, len(deck.Slides))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchParallelism)
	for i, sl := range deck.Slides {
		if sl.ImageURL == "" {
			continue
		}
		idx, url := i, sl.ImageURL
		g.Go(func() error {
			data, _, err := r.fetcher.Fetch(gctx, url)
			if err != nil {
				log.Printf("slide %d: image fetch failed, demoting to non-image layout: %v", idx, err)
				return nil
			}
			img, err := decodeImage(data)
			if err != nil {
				log.Printf("slide %d: %v", idx, err)
				return nil
			}
			assets[idx] = img
			return nil
		})
	}
	g.Wait()
	return assets
}

func (r *DeckRenderer) addTitleSlide(p *ppt.Presentation, th Theme, title string) {
	slide := p.GetActiveSlide()
	paintThemeBackground(slide, th)

	paintRect(slide, argb(th.Accent), 0, 0, slideWidthEMU, int64(0.12*emuPerInch))
	paintRect(slide, argb(th.SecondaryAccent), int64(4.3*emuPerInch), int64(1.75*emuPerInch), int64(1.4*emuPerInch), int64(0.06*emuPerInch))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(int64(0.8 * emuPerInch)).SetOffsetY(int64(2.05 * emuPerInch))
	titleShape.SetWidth(int64(8.4 * emuPerInch)).SetHeight(int64(1.3 * emuPerInch))
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(fontDeckTitle).SetBold(true).SetColor(ppt.NewColor(argb(th.TitleColor)))
	alignCenter(titleShape.GetActiveParagraph())

	dateShape := slide.CreateRichTextShape()
	dateShape.SetOffsetX(marginEMU).SetOffsetY(int64(3.7 * emuPerInch))
	dateShape.SetWidth(contentWidthEMU).SetHeight(int64(0.4 * emuPerInch))
	dr := dateShape.CreateTextRun(time.Now().Format("January 2, 2006"))
	dr.GetFont().SetSize(fontSmall).SetColor(ppt.NewColor(argb(th.BodyColor)))
	alignCenter(dateShape.GetActiveParagraph())

	paintRect(slide, argb(th.Accent), 0, int64(5.5*emuPerInch), slideWidthEMU, int64(0.125*emuPerInch))
}

func (r *DeckRenderer) addClosingSlide(p *ppt.Presentation, th Theme, deckTitle string) {
	slide := p.CreateSlide()
	paintThemeBackground(slide, th)

	paintRect(slide, argb(th.Accent), 0, 0, slideWidthEMU, int64(0.12*emuPerInch))

	thankShape := slide.CreateRichTextShape()
	thankShape.SetOffsetX(int64(1.0 * emuPerInch)).SetOffsetY(int64(2.0 * emuPerInch))
	thankShape.SetWidth(int64(8.0 * emuPerInch)).SetHeight(int64(1.0 * emuPerInch))
	tr := thankShape.CreateTextRun("Thank You")
	tr.GetFont().SetSize(fontOpening).SetBold(true).SetColor(ppt.NewColor(argb(th.TitleColor)))
	alignCenter(thankShape.GetActiveParagraph())

	subShape := slide.CreateRichTextShape()
	subShape.SetOffsetX(int64(1.0 * emuPerInch)).SetOffsetY(int64(3.2 * emuPerInch))
	subShape.SetWidth(int64(8.0 * emuPerInch)).SetHeight(int64(0.5 * emuPerInch))
	sr := subShape.CreateTextRun(deckTitle)
	sr.GetFont().SetSize(fontBody).SetColor(ppt.NewColor(argb(th.BodyColor)))
	alignCenter(subShape.GetActiveParagraph())

	paintRect(slide, argb(th.Accent), 0, int64(5.5*emuPerInch), slideWidthEMU, int64(0.125*emuPerInch))
}

func renderFullImageTitle(slide *ppt.Slide, th Theme, sl models.Slide, img image.Image) {
	overImage := img != nil && embedImage(slide, img, 0, 0, slideWidthEMU, slideHeightEMU)
	if overImage {
		paintScrim(slide, th, 0, 0, slideWidthEMU, slideHeightEMU)
	} else {
		paintThemeBackground(slide, th)
	}

	titleColor := th.TitleColor
	subColor := th.BodyColor
	if overImage {
		titleColor = "FFFFFF"
		subColor = "F1F5F9"
	}

	paintRect(slide, argb(th.Accent), int64(4.3*emuPerInch), int64(1.7*emuPerInch), int64(1.4*emuPerInch), int64(0.06*emuPerInch))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(int64(0.8 * emuPerInch)).SetOffsetY(int64(2.0 * emuPerInch))
	titleShape.SetWidth(int64(8.4 * emuPerInch)).SetHeight(int64(1.2 * emuPerInch))
	tr := titleShape.CreateTextRun(sl.SlideTitle)
	tr.GetFont().SetSize(fontOpening).SetBold(true).SetColor(ppt.NewColor(argb(titleColor)))
	alignCenter(titleShape.GetActiveParagraph())

	if len(sl.Points) > 0 {
		subShape := slide.CreateRichTextShape()
		subShape.SetOffsetX(int64(1.2 * emuPerInch)).SetOffsetY(int64(3.3 * emuPerInch))
		subShape.SetWidth(int64(7.6 * emuPerInch)).SetHeight(int64(0.8 * emuPerInch))
		st := subShape.CreateTextRun(sl.Points[0])
		st.GetFont().SetSize(fontSubtitle).SetColor(ppt.NewColor(argb(subColor)))
		alignCenter(subShape.GetActiveParagraph())
	}
}

func renderSplitImage(slide *ppt.Slide, th Theme, sl models.Slide, img image.Image, imageOnLeft bool) {
	paintThemeBackground(slide, th)

	imgX := slideWidthEMU - splitImageWidthEMU
	textX := marginEMU
	if imageOnLeft {
		imgX = 0
		textX = splitImageWidthEMU + marginEMU
	}

	if img != nil && embedImage(slide, img, imgX, 0, splitImageWidthEMU, slideHeightEMU) {
		paintScrim(slide, th, imgX, 0, splitImageWidthEMU, slideHeightEMU)
	}

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(textX).SetOffsetY(int64(0.45 * emuPerInch))
	titleShape.SetWidth(splitTextWidthEMU).SetHeight(int64(1.0 * emuPerInch))
	tr := titleShape.CreateTextRun(sl.SlideTitle)
	tr.GetFont().SetSize(fontSplitTitle).SetBold(true).SetColor(ppt.NewColor(argb(th.TitleColor)))

	paintRect(slide, argb(th.Accent), textX, int64(1.5*emuPerInch), int64(1.2*emuPerInch), int64(0.05*emuPerInch))
	addBulletBlock(slide, th, sl.Points, textX, int64(1.8*emuPerInch), splitTextWidthEMU, int64(3.5*emuPerInch), fontSplitBody, th.BodyColor)
}

func renderImageDominant(slide *ppt.Slide, th Theme, sl models.Slide, img image.Image) {
	if img == nil || !embedImage(slide, img, 0, 0, slideWidthEMU, slideHeightEMU) {
		renderGradientBullets(slide, th, sl)
		return
	}
	paintScrim(slide, th, 0, 0, slideWidthEMU, slideHeightEMU)

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(int64(0.6 * emuPerInch)).SetOffsetY(int64(3.0 * emuPerInch))
	titleShape.SetWidth(int64(8.8 * emuPerInch)).SetHeight(int64(0.8 * emuPerInch))
	tr := titleShape.CreateTextRun(sl.SlideTitle)
	tr.GetFont().SetSize(fontDominant).SetBold(true).SetColor(ppt.ColorWhite)

	paintRect(slide, argb(th.Accent), int64(0.6*emuPerInch), int64(3.85*emuPerInch), int64(1.2*emuPerInch), int64(0.05*emuPerInch))
	addBulletBlock(slide, th, sl.Points, int64(0.6*emuPerInch), int64(4.05*emuPerInch), int64(8.8*emuPerInch), int64(1.4*emuPerInch), fontBody, "F1F5F9")
}

func renderGradientBullets(slide *ppt.Slide, th Theme, sl models.Slide) {
	paintThemeBackground(slide, th)

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(marginEMU).SetOffsetY(int64(0.35 * emuPerInch))
	titleShape.SetWidth(contentWidthEMU).SetHeight(int64(0.9 * emuPerInch))
	tr := titleShape.CreateTextRun(sl.SlideTitle)
	tr.GetFont().SetSize(fontSlideTitle).SetBold(true).SetColor(ppt.NewColor(argb(th.TitleColor)))

	paintRect(slide, argb(th.Accent), marginEMU, int64(1.3*emuPerInch), int64(1.4*emuPerInch), int64(0.05*emuPerInch))
	addBulletBlock(slide, th, sl.Points, int64(0.6*emuPerInch), int64(1.6*emuPerInch), int64(8.6*emuPerInch), int64(3.6*emuPerInch), fontBody, th.BodyColor)
}

func renderCleanSummary(slide *ppt.Slide, th Theme, sl models.Slide) {
	paintRect(slide, argb(th.Background.Color), 0, 0, slideWidthEMU, slideHeightEMU)

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(int64(0.8 * emuPerInch)).SetOffsetY(int64(0.9 * emuPerInch))
	titleShape.SetWidth(int64(8.4 * emuPerInch)).SetHeight(int64(1.0 * emuPerInch))
	tr := titleShape.CreateTextRun(sl.SlideTitle)
	tr.GetFont().SetSize(fontSummary).SetBold(true).SetColor(ppt.NewColor(argb(th.TitleColor)))
	alignCenter(titleShape.GetActiveParagraph())

	paintRect(slide, argb(th.Accent), int64(4.4*emuPerInch), int64(2.0*emuPerInch), int64(1.2*emuPerInch), int64(0.05*emuPerInch))

	if len(sl.Points) > 0 {
		body := slide.CreateRichTextShape()
		body.SetOffsetX(int64(1.5 * emuPerInch)).SetOffsetY(int64(2.4 * emuPerInch))
		body.SetWidth(int64(7.0 * emuPerInch)).SetHeight(int64(2.7 * emuPerInch))
		for i, point := range sl.Points {
			if i > 0 {
				body.CreateParagraph()
			}
			pr := body.CreateTextRun(point)
			pr.GetFont().SetSize(fontSummaryBody).SetColor(ppt.NewColor(argb(th.BodyColor)))
			alignCenter(body.GetActiveParagraph())
		}
	}
}

// embedImage crops, scales and places an image over the given region.
func embedImage(slide *ppt.Slide, img image.Image, x, y, w, h int64) bool {
	data, mime, err := renderImageRegion(img, w, h)
	if err != nil {
		log.Printf("image embed skipped: %v", err)
		return false
	}
	shape := slide.CreateDrawingShape()
	shape.SetImageData(data, mime)
	shape.SetOffsetX(x).SetOffsetY(y)
	shape.SetWidth(w).SetHeight(h)
	return true
}

// addBulletBlock lays points into one text shape, one paragraph per point,
// with the marker run in the theme bullet color.
func addBulletBlock(slide *ppt.Slide, th Theme, points []string, x, y, w, h int64, size int, textColor string) {
	if len(points) == 0 {
		return
	}
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(x).SetOffsetY(y)
	shape.SetWidth(w).SetHeight(h)
	for i, point := range points {
		if i > 0 {
			shape.CreateParagraph()
		}
		marker := shape.CreateTextRun("•  ")
		marker.GetFont().SetSize(size).SetBold(true).SetColor(ppt.NewColor(argb(th.BulletColor)))
		tr := shape.CreateTextRun(point)
		tr.GetFont().SetSize(size).SetColor(ppt.NewColor(argb(textColor)))
	}
}

// addPageBadge numbers a content slide in the bottom-right corner. Content
// numbering starts at 2 because the deck title slide is slide 1.
func addPageBadge(slide *ppt.Slide, th Theme, number int, overImage bool) {
	color := th.BodyColor
	if overImage {
		color = "FFFFFF"
	}
	shape := slide.CreateRichTextShape()
	shape.SetOffsetX(int64(9.0 * emuPerInch)).SetOffsetY(int64(5.24 * emuPerInch))
	shape.SetWidth(int64(0.6 * emuPerInch)).SetHeight(int64(0.3 * emuPerInch))
	tr := shape.CreateTextRun(strconv.Itoa(number))
	tr.GetFont().SetSize(fontBadge).SetColor(ppt.NewColor(argb(color)))
	alignRight(shape.GetActiveParagraph())
}
