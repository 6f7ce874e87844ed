package main

import (
	"log"
	"os"

	"posinsights/config"
	"posinsights/database"
	"posinsights/posapi"
	"posinsights/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	posAPIBaseURL := os.Getenv("POS_API_BASE_URL")
	if posAPIBaseURL == "" {
		log.Fatal("POS_API_BASE_URL is not set")
	}

	// Set up the application configuration
	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.PosAPIBaseURL = posAPIBaseURL
	config.AppConfig.PosAPIToken = os.Getenv("POS_API_TOKEN")
	config.AppConfig.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	// Initialize database
	database.Connect(databaseURL)
	defer database.Close()
	database.EnsureSchema()

	// Initialize the POS API client
	posapi.Init(config.AppConfig.PosAPIBaseURL, config.AppConfig.PosAPIToken)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
