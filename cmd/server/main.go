package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"go-jobsearch-malawi/internal/api"
	"go-jobsearch-malawi/internal/config"
	"go-jobsearch-malawi/internal/logger"
	"go-jobsearch-malawi/internal/scraper"
)

func main() {
	logger.Init()

	cfg := config.Load()
	log.Info().Strs("seeds", cfg.SeedURLs).Bool("use_browser", cfg.UseBrowser).Msg("Config loaded")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggerMiddleware())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	pipeline := scraper.NewPipeline(cfg)
	handler := api.NewHandler(pipeline)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Job discovery API is running"})
	})
	handler.Register(r.Group("/api"))

	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
