package main

import (
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/config"
	"github.com/iamgjek/Shopee2Multi-sub000/database"
	authapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/auth"
	conversionapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/conversion"
	routes "github.com/iamgjek/Shopee2Multi-sub000/internal/app/http"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/logger"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/scraper"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	log := logger.New()
	authapi.SetMailLogger(log)
	conversionapi.Init(scraper.NewChromeFetcher(log), log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Completed spreadsheets double as direct links.
	r.Static("/uploads", config.UPLOAD_DIR)

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
