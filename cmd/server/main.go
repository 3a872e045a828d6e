package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"slideforge/config"
	"slideforge/controllers"
	"slideforge/db"
	"slideforge/internal/quota"
	"slideforge/middlewares"
	"slideforge/routes"
	"slideforge/services"
	"slideforge/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// wsQuota throttles generation requests arriving over the WebSocket.
var wsQuota *quota.Limiter

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}

	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWT.Expiry)

	services.InitDeckService(cfg)
	controllers.InitDeckControllers(cfg)
	wsQuota = quota.NewLimiter(quota.Config{
		MaxGenerations: cfg.Quota.MaxGenerations,
		Window:         time.Duration(cfg.Quota.WindowMinutes) * time.Minute,
	})

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis only backs the generation quota, so the server still runs
	// (unthrottled) when it is unavailable
	if err := quota.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, generation quota disabled: %v", err)
	}

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	corsOrigins := cfg.Server.CorsOrigins
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes for authentication
	auth := router.Group("/auth")
	{
		auth.POST("/signup", routes.SignUpRouteHandler)
		auth.POST("/login", routes.LoginRouteHandler)
		auth.POST("/verifyToken", routes.VerifyTokenRouteHandler)
	}

	api := router.Group("/api/v1")
	api.GET("/themes", routes.ListThemesRouteHandler)

	// Generation accepts anonymous callers; a valid token attaches ownership
	generation := api.Group("/")
	generation.Use(middlewares.OptionalAuthMiddleware())
	routes.SetupDeckGenerationRoutes(generation)

	// Saved decks and stats require a signed-in user
	library := api.Group("/")
	library.Use(middlewares.AuthMiddleware())
	routes.SetupDeckLibraryRoutes(library)

	// WebSocket endpoint streaming generation progress
	ws := router.Group("/ws")
	ws.Use(middlewares.OptionalAuthMiddleware())
	ws.GET("/generate", GenerateWebsocketHandler)

	return router
}
