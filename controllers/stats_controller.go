package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"slideforge/db"
)

// GetStats reports how many decks the signed-in user has saved, how many came
// from each generation path, today's volume and the total user count.
func GetStats(ctx *gin.Context) {
	owner := ctx.GetString("userEmail")

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := db.CountDeckRecords(dbCtx, owner)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to load stats", "message": err.Error()})
		return
	}

	aiDecks, err := db.DecksCollection.CountDocuments(dbCtx, bson.M{"owner": owner, "source": "ai"})
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to load stats", "message": err.Error()})
		return
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	decksToday, err := db.DecksCollection.CountDocuments(dbCtx, bson.M{
		"owner":     owner,
		"createdAt": bson.M{"$gte": startOfDay},
	})
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to load stats", "message": err.Error()})
		return
	}

	users, err := db.UsersCollection.CountDocuments(dbCtx, bson.M{})
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to load stats", "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{
		"deckCount":     total,
		"aiDecks":       aiDecks,
		"fallbackDecks": total - aiDecks,
		"decksToday":    decksToday,
		"users":         users,
	})
}
