package routes

import (
	"slideforge/controllers"

	"github.com/gin-gonic/gin"
)

// SetupDeckGenerationRoutes registers the generation and export endpoints.
// They accept anonymous callers; decks are persisted only when the optional
// auth middleware identified a user.
func SetupDeckGenerationRoutes(router *gin.RouterGroup) {
	decks := router.Group("/decks")
	{
		decks.POST("/from-text", controllers.GenerateDeckFromText)
		decks.POST("/from-topic", controllers.GenerateDeckFromTopic)
		decks.POST("/from-url", controllers.GenerateDeckFromURL)
		decks.POST("/from-pdf", controllers.GenerateDeckFromPDF)
		decks.POST("/export", controllers.ExportDeck)
	}
}

// SetupDeckLibraryRoutes registers the saved-deck and stats endpoints for
// signed-in users.
func SetupDeckLibraryRoutes(router *gin.RouterGroup) {
	router.GET("/decks", controllers.ListDecks)
	router.GET("/decks/:id", controllers.GetDeck)
	router.DELETE("/decks/:id", controllers.DeleteDeck)
	router.GET("/decks/:id/export", controllers.ExportDeckByID)
	router.GET("/stats", controllers.GetStats)
}
