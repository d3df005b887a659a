package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/handler"
	"github.com/stemsi/quizdoc/internal/middleware"
	"github.com/stemsi/quizdoc/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz *handler.QuizHandler
}

// SetupRouter configures all Gin routes with their middlewares.
func SetupRouter(
	cfg *config.Config,
	handlers *Handlers,
	extractLimiter *middleware.RateLimiter,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Uploads are read whole; keep the multipart buffer in line with the limit.
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(response.RequestLogger(log))

	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// The browser quiz fetches questions.json next to its index page.
	router.GET("/questions.json", middleware.NoCache(), handlers.Quiz.QuizFile)

	api := router.Group("/api/v1")
	{
		quiz := api.Group("/quiz")
		quiz.Use(middleware.NoCache())
		{
			quiz.GET("", handlers.Quiz.GetQuiz)
			quiz.GET("/questions", handlers.Quiz.ListQuestions)
		}

		api.POST("/extract", extractLimiter.Middleware(), handlers.Quiz.Extract)
	}

	// Serve the quiz frontend statically when configured.
	if cfg.StaticDir != "" {
		router.NoRoute(middleware.CacheControl(3600), gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	return router
}
