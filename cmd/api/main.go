package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"blog-backend/pkg/logger"
)

func main() {
	// .env is optional; production uses the real environment
	envLoadErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env)

	if envLoadErr != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
