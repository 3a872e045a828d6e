package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"slideforge/models"
	"slideforge/services"
	"slideforge/structs"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var generateUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	requestFrameTimeout = 30 * time.Second
	socketGenTimeout    = 90 * time.Second
)

// writeGenerateEvent pushes one progress event to the client.
func writeGenerateEvent(conn *websocket.Conn, eventType string, payload interface{}) error {
	return conn.WriteJSON(structs.GenerateEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	})
}

// validateGenerateRequest normalizes the request frame and returns an error
// message for the client, or "" when the frame is acceptable.
func validateGenerateRequest(request *structs.GenerateSocketRequest) string {
	request.Content = strings.TrimSpace(request.Content)
	request.Title = strings.TrimSpace(request.Title)

	if request.SlideCount < 1 || request.SlideCount > models.MaxSlides {
		return fmt.Sprintf("slideCount must be between 1 and %d", models.MaxSlides)
	}

	switch request.Kind {
	case "text":
		if n := utf8.RuneCountInString(request.Content); n < structs.MinContentLen || n > structs.MaxContentLen {
			return fmt.Sprintf("content must be between %d and %d characters", structs.MinContentLen, structs.MaxContentLen)
		}
	case "topic":
		if n := utf8.RuneCountInString(request.Content); n < 3 || n > 200 {
			return "topic must be between 3 and 200 characters"
		}
	default:
		return `kind must be "text" or "topic"`
	}
	return ""
}

// draftForSocket runs the model path for the requested kind and falls back to
// the deterministic builder on any model failure.
func draftForSocket(ctx context.Context, request *structs.GenerateSocketRequest) (*models.SlideDeck, services.GenerationSource) {
	if request.Kind == "topic" {
		deck, err := services.DraftDeckFromTopic(ctx, request.Content, request.SlideCount)
		if err != nil {
			log.Printf("Socket topic generation failed, using fallback: %v", err)
			return services.BuildDeckFromText(request.Content, request.Content, request.SlideCount), services.SourceFallback
		}
		return deck, services.SourceAI
	}

	prompt := request.Content
	if request.Title != "" {
		prompt = "Title: " + request.Title + "\n\n" + prompt
	}
	deck, err := services.DraftDeck(ctx, prompt, request.SlideCount)
	if err != nil {
		log.Printf("Socket text generation failed, using fallback: %v", err)
		return services.BuildDeckFromText(request.Content, request.Title, request.SlideCount), services.SourceFallback
	}
	return deck, services.SourceAI
}

// GenerateWebsocketHandler streams deck generation progress to the client.
// The client sends a single request frame and receives staged events:
// start, generating, resolving_images, then complete or error.
func GenerateWebsocketHandler(c *gin.Context) {
	identity := c.GetString("userEmail")
	if identity == "" {
		identity = c.ClientIP()
	}

	conn, err := generateUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(requestFrameTimeout))

	var request structs.GenerateSocketRequest
	if err := conn.ReadJSON(&request); err != nil {
		writeGenerateEvent(conn, "error", gin.H{"message": "invalid request frame"})
		return
	}

	if msg := validateGenerateRequest(&request); msg != "" {
		writeGenerateEvent(conn, "error", gin.H{"message": msg})
		return
	}

	if wsQuota != nil {
		allowed, err := wsQuota.Allow(identity)
		if err == nil && !allowed {
			writeGenerateEvent(conn, "error", gin.H{"message": "Generation quota exceeded, try again later"})
			return
		}
	}

	writeGenerateEvent(conn, "start", gin.H{"kind": request.Kind, "slideCount": request.SlideCount})

	ctx, cancel := context.WithTimeout(context.Background(), socketGenTimeout)
	defer cancel()

	writeGenerateEvent(conn, "generating", nil)
	deck, source := draftForSocket(ctx, &request)

	writeGenerateEvent(conn, "resolving_images", gin.H{"slides": len(deck.Slides)})
	services.AttachImages(ctx, deck)

	writeGenerateEvent(conn, "complete", structs.DeckResponse{Source: string(source), Deck: deck})
}
