package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"slideforge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var UsersCollection *mongo.Collection
var DecksCollection *mongo.Collection

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "test"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "test"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "test"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	UsersCollection = MongoDatabase.Collection("users")
	DecksCollection = MongoDatabase.Collection("decks")
	return nil
}

// SaveDeckRecord persists a generated deck for its owner
func SaveDeckRecord(ctx context.Context, record models.DeckRecord) error {
	_, err := DecksCollection.InsertOne(ctx, record)
	if err != nil {
		log.Printf("Error saving deck record: %v", err)
		return err
	}
	return nil
}

// GetDeckRecord fetches one deck record by id
func GetDeckRecord(ctx context.Context, id string) (*models.DeckRecord, error) {
	var record models.DeckRecord
	err := DecksCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no deck found with id: %s", id)
		}
		return nil, err
	}
	return &record, nil
}

// ListDeckRecords returns a user's decks, most recent first, capped at 50
func ListDeckRecords(ctx context.Context, owner string) ([]models.DeckRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := DecksCollection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.DeckRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteDeckRecord removes a deck record, reporting whether one was deleted
func DeleteDeckRecord(ctx context.Context, id, owner string) (bool, error) {
	res, err := DecksCollection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// CountDeckRecords counts a user's stored decks
func CountDeckRecords(ctx context.Context, owner string) (int64, error) {
	return DecksCollection.CountDocuments(ctx, bson.M{"owner": owner})
}
