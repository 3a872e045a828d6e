package controllers

import (
	"context"
	"strings"
	"time"

	"slideforge/db"
	"slideforge/models"
	"slideforge/structs"
	"slideforge/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func SignUp(ctx *gin.Context) {
	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := db.UsersCollection.CountDocuments(dbCtx, bson.M{"email": email})
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Internal server error", "message": err.Error()})
		return
	}
	if count > 0 {
		ctx.JSON(409, gin.H{"error": "Account already exists", "message": "An account with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to sign up", "message": err.Error()})
		return
	}

	user := models.User{
		Email:        email,
		DisplayName:  utils.ExtractNameFromEmail(email),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if _, err := db.UsersCollection.InsertOne(dbCtx, user); err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to sign up", "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{"message": "Sign-up successful"})
}

func Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(400, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UsersCollection.FindOne(dbCtx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			ctx.JSON(401, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
			return
		}
		ctx.JSON(500, gin.H{"error": "Internal server error", "message": err.Error()})
		return
	}

	if !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		ctx.JSON(401, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		ctx.JSON(500, gin.H{"error": "Failed to sign in", "message": err.Error()})
		return
	}

	ctx.JSON(200, gin.H{"message": "Sign-in successful", "accessToken": token})
}

func VerifyToken(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		ctx.JSON(401, gin.H{"error": "Missing token"})
		return
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		ctx.JSON(400, gin.H{"error": "Invalid token format"})
		return
	}

	valid, email, err := utils.ValidateTokenAndFetchEmail(tokenParts[1])
	if err != nil || !valid {
		ctx.JSON(401, gin.H{"error": "Token is invalid or expired"})
		return
	}

	ctx.JSON(200, gin.H{"message": "Token is valid", "email": email})
}
