package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"slideforge/config"
	"slideforge/db"
	"slideforge/models"
	"slideforge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Parse command line flags
	email := flag.String("email", "", "User email (required)")
	password := flag.String("password", "", "User password (required)")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	// Validate required fields
	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Println("Error: password must be at least 8 characters")
		os.Exit(1)
	}

	// Load config
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.MongoClient.Disconnect(context.Background())

	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))

	// Check if the user already exists
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existingUser models.User
	err = db.UsersCollection.FindOne(dbCtx, bson.M{"email": normalizedEmail}).Decode(&existingUser)
	if err == nil {
		log.Fatalf("User with email %s already exists", normalizedEmail)
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Database error: %v", err)
	}

	// Hash password
	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Create new user
	newUser := models.User{
		Email:        normalizedEmail,
		DisplayName:  utils.ExtractNameFromEmail(normalizedEmail),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	// Insert user into database
	result, err := db.UsersCollection.InsertOne(dbCtx, newUser)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully!\n")
	fmt.Printf("   ID: %s\n", result.InsertedID)
	fmt.Printf("   Email: %s\n", normalizedEmail)
}
