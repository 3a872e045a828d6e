package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"slideforge/config"
	"slideforge/content"
	"slideforge/db"
	"slideforge/internal/quota"
	"slideforge/models"
	"slideforge/renderer"
	"slideforge/services"
	"slideforge/structs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxPDFBytes     = 20 << 20
	generateTimeout = 90 * time.Second
	renderTimeout   = 60 * time.Second

	pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

var (
	deckRenderer *renderer.DeckRenderer
	quotaLimiter *quota.Limiter
)

// InitDeckControllers wires the deck renderer and the generation quota
// limiter using values from the config
func InitDeckControllers(cfg *config.Config) {
	deckRenderer = renderer.NewDeckRenderer(nil)
	quotaLimiter = quota.NewLimiter(quota.Config{
		MaxGenerations: cfg.Quota.MaxGenerations,
		Window:         time.Duration(cfg.Quota.WindowMinutes) * time.Minute,
	})
}

// allowQuota enforces the per-identity generation quota. Signed-in users are
// counted by email, anonymous users by client IP. Limiter trouble never
// blocks a request.
func allowQuota(ctx *gin.Context) bool {
	if quotaLimiter == nil {
		return true
	}
	identity := ctx.GetString("userEmail")
	if identity == "" {
		identity = ctx.ClientIP()
	}
	allowed, err := quotaLimiter.Allow(identity)
	if err != nil {
		log.Printf("Quota check failed for %s: %v", identity, err)
		return true
	}
	if !allowed {
		ctx.JSON(429, gin.H{"error": "Too many requests", "message": "Generation quota exceeded, try again later"})
		return false
	}
	return true
}

// tryGenerate runs the model path when the source text is substantial enough
// for a useful prompt. Returns false when the caller should fall back.
func tryGenerate(ctx context.Context, text string, slideCount int) (*models.SlideDeck, bool) {
	if utf8.RuneCountInString(text) < structs.MinContentLen {
		return nil, false
	}
	if runes := []rune(text); len(runes) > structs.MaxContentLen {
		text = string(runes[:structs.MaxContentLen])
	}
	deck, err := services.GenerateDeck(ctx, text, slideCount)
	if err != nil {
		log.Printf("Model deck generation failed, using fallback: %v", err)
		return nil, false
	}
	return deck, true
}

// generateWithFallback builds a deck from raw text, preferring the model and
// degrading to the deterministic builder.
func generateWithFallback(ctx context.Context, text, title string, slideCount int) (*models.SlideDeck, services.GenerationSource) {
	prompt := text
	if title != "" {
		prompt = "Title: " + title + "\n\n" + text
	}
	if deck, ok := tryGenerate(ctx, prompt, slideCount); ok {
		return deck, services.SourceAI
	}
	return services.BuildDeckFromText(text, title, slideCount), services.SourceFallback
}

// generateFromPage builds a deck from a scraped page, preferring the model
// and degrading to the structural page builder.
func generateFromPage(ctx context.Context, page *content.ScrapedPage, slideCount int) (*models.SlideDeck, services.GenerationSource) {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", page.Title)
	if page.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", page.Description)
	}
	b.WriteString("\n")
	b.WriteString(page.Content)

	if deck, ok := tryGenerate(ctx, b.String(), slideCount); ok {
		return deck, services.SourceAI
	}
	return services.BuildDeckFromPage(page, slideCount), services.SourceFallback
}

// mapContentError writes the HTTP response for an extraction failure.
func mapContentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrInvalidInput):
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
	case content.IsNotFound(err):
		ctx.JSON(404, gin.H{"error": "Page not found", "message": err.Error()})
	case content.IsBlocked(err):
		ctx.JSON(403, gin.H{"error": "Access blocked", "message": err.Error()})
	case content.IsTimeout(err):
		ctx.JSON(504, gin.H{"error": "Fetch timed out", "message": err.Error()})
	case errors.Is(err, content.ErrExtraction):
		ctx.JSON(422, gin.H{"error": "Extraction failed", "message": err.Error()})
	case content.IsFetchKind(err, content.FetchHostNotFound), content.IsFetchKind(err, content.FetchOther):
		ctx.JSON(502, gin.H{"error": "Fetch failed", "message": err.Error()})
	default:
		ctx.JSON(500, gin.H{"error": "Internal server error", "message": err.Error()})
	}
}

// persistDeck saves a generated deck for signed-in users and returns the new
// record ID. Anonymous decks are returned to the caller but never stored.
// Persistence trouble is logged, not surfaced; the caller still has the deck.
func persistDeck(ctx *gin.Context, deck *models.SlideDeck, source services.GenerationSource, sourceKind string) string {
	owner := ctx.GetString("userEmail")
	if owner == "" {
		return ""
	}

	record := models.DeckRecord{
		ID:         uuid.New().String(),
		Owner:      owner,
		Source:     string(source),
		SourceKind: sourceKind,
		Theme:      renderer.DefaultThemeName,
		Deck:       *deck,
		CreatedAt:  time.Now(),
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.SaveDeckRecord(dbCtx, record); err != nil {
		log.Printf("Failed to persist deck for %s: %v", owner, err)
		return ""
	}
	return record.ID
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename makes a deck title safe for a Content-Disposition header.
func sanitizeFilename(title string) string {
	name := filenameSanitizer.ReplaceAllString(title, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "presentation"
	}
	return name
}

func writePPTX(ctx *gin.Context, data []byte, title string) {
	filename := sanitizeFilename(title) + ".pptx"
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(200, pptxContentType, data)
}

// GenerateDeckFromText builds a slide deck from raw pasted text.
func GenerateDeckFromText(ctx *gin.Context) {
	var request structs.DeckFromTextRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	text := strings.TrimSpace(request.Content)
	if n := utf8.RuneCountInString(text); n < structs.MinContentLen || n > structs.MaxContentLen {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": fmt.Sprintf("content must be between %d and %d characters", structs.MinContentLen, structs.MaxContentLen)})
		return
	}

	if !allowQuota(ctx) {
		return
	}

	genCtx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	deck, source := generateWithFallback(genCtx, text, strings.TrimSpace(request.Title), request.SlideCount)
	id := persistDeck(ctx, deck, source, "text")
	ctx.JSON(200, structs.DeckResponse{ID: id, Source: string(source), Deck: deck})
}

// GenerateDeckFromTopic builds a slide deck about a bare topic, with the
// model supplying the substance.
func GenerateDeckFromTopic(ctx *gin.Context) {
	var request structs.DeckFromTopicRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	topic := strings.TrimSpace(request.Topic)
	if n := utf8.RuneCountInString(topic); n < 3 || n > 200 {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "topic must be between 3 and 200 characters"})
		return
	}

	if !allowQuota(ctx) {
		return
	}

	genCtx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	deck, err := services.GenerateDeckFromTopic(genCtx, topic, request.SlideCount)
	source := services.SourceAI
	if err != nil {
		log.Printf("Topic deck generation failed, using fallback: %v", err)
		deck = services.BuildDeckFromText(topic, topic, request.SlideCount)
		source = services.SourceFallback
	}

	id := persistDeck(ctx, deck, source, "topic")
	ctx.JSON(200, structs.DeckResponse{ID: id, Source: string(source), Deck: deck})
}

// GenerateDeckFromURL scrapes a web page and builds a slide deck from it.
func GenerateDeckFromURL(ctx *gin.Context) {
	var request structs.DeckFromURLRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if !allowQuota(ctx) {
		return
	}

	genCtx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	page, err := content.ScrapePage(genCtx, request.URL)
	if err != nil {
		mapContentError(ctx, err)
		return
	}

	deck, source := generateFromPage(genCtx, page, request.SlideCount)
	id := persistDeck(ctx, deck, source, "url")
	ctx.JSON(200, structs.DeckResponse{ID: id, Source: string(source), Deck: deck})
}

// GenerateDeckFromPDF builds a slide deck from an uploaded PDF file.
func GenerateDeckFromPDF(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "missing file upload"})
		return
	}
	if fileHeader.Size > maxPDFBytes {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "PDF exceeds the 20MB limit"})
		return
	}

	slideCount, err := strconv.Atoi(ctx.DefaultPostForm("slideCount", "8"))
	if err != nil || slideCount < 1 || slideCount > models.MaxSlides {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "slideCount must be between 1 and 20"})
		return
	}

	if !allowQuota(ctx) {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Internal server error", "message": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Internal server error", "message": err.Error()})
		return
	}

	doc, err := content.ExtractPDF(data)
	if err != nil {
		mapContentError(ctx, err)
		return
	}

	genCtx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	deck, source := generateWithFallback(genCtx, doc.Text, strings.TrimSpace(doc.Info.Title), slideCount)
	id := persistDeck(ctx, deck, source, "pdf")
	ctx.JSON(200, structs.DeckResponse{ID: id, Source: string(source), Deck: deck})
}

// ExportDeck renders a deck supplied in the request body to a PPTX download.
func ExportDeck(ctx *gin.Context) {
	var request structs.ExportDeckRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	renderCtx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	data, err := deckRenderer.Render(renderCtx, &request.Deck, request.Theme)
	if err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid deck", "message": err.Error()})
		return
	}
	writePPTX(ctx, data, request.Deck.Title)
}

// ListDecks returns the signed-in user's saved decks, newest first.
func ListDecks(ctx *gin.Context) {
	owner := ctx.GetString("userEmail")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := db.ListDeckRecords(dbCtx, owner)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to list decks", "message": err.Error()})
		return
	}
	ctx.JSON(200, gin.H{"decks": records})
}

// GetDeck returns one saved deck. Decks owned by other users read as missing.
func GetDeck(ctx *gin.Context) {
	owner := ctx.GetString("userEmail")
	id := ctx.Param("id")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := db.GetDeckRecord(dbCtx, id)
	if err != nil || record.Owner != owner {
		ctx.JSON(404, gin.H{"error": "Deck not found"})
		return
	}
	ctx.JSON(200, record)
}

// DeleteDeck removes one of the signed-in user's saved decks.
func DeleteDeck(ctx *gin.Context) {
	owner := ctx.GetString("userEmail")
	id := ctx.Param("id")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deleted, err := db.DeleteDeckRecord(dbCtx, id, owner)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to delete deck", "message": err.Error()})
		return
	}
	if !deleted {
		ctx.JSON(404, gin.H{"error": "Deck not found"})
		return
	}
	ctx.JSON(200, gin.H{"message": "Deck deleted"})
}

// ExportDeckByID renders a saved deck to a PPTX download. A theme query
// parameter overrides the theme stored on the record.
func ExportDeckByID(ctx *gin.Context) {
	owner := ctx.GetString("userEmail")
	id := ctx.Param("id")

	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	record, err := db.GetDeckRecord(dbCtx, id)
	if err != nil || record.Owner != owner {
		ctx.JSON(404, gin.H{"error": "Deck not found"})
		return
	}

	theme := ctx.DefaultQuery("theme", record.Theme)

	renderCtx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	data, err := deckRenderer.Render(renderCtx, &record.Deck, theme)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to export deck", "message": err.Error()})
		return
	}
	writePPTX(ctx, data, record.Deck.Title)
}
