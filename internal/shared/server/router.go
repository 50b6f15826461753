package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	pickiauth "picki-backend/internal/auth"
	"picki-backend/internal/llm"
	"picki-backend/internal/llm/openai"
	"picki-backend/internal/quota"
	"picki-backend/internal/recommendations"
	"picki-backend/internal/shared/config"
	"picki-backend/internal/shared/metrics"
	"picki-backend/internal/shared/server/middleware"
	"picki-backend/internal/shared/server/respond"
	"picki-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"GENERATE": {Rate: 0.2, Burst: 3},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/recommend" {
					return "GENERATE"
				}
				return ""
			},
		}),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var repo recommendations.Repo
	if sqlDB != nil {
		repo = &recommendations.PGRepo{DB: sqlDB}
	} else {
		repo = recommendations.NewMemoryRepo()
	}
	var quotaSvc *quota.Service
	if sqlDB != nil {
		quotaSvc = quota.NewPostgresService(quota.NewPGStore(sqlDB))
	} else {
		quotaSvc = quota.NewService()
	}

	var llmClient llm.Client
	if !cfg.MockMode() && cfg.OpenAIKey != "" {
		client, err := openai.NewClient(cfg.OpenAIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("openai client unavailable: %v", err)
		} else {
			llmClient = client
		}
	}

	recSvc := &recommendations.Service{
		Repo:     repo,
		Quota:    quotaSvc,
		LLM:      llmClient,
		MockMode: cfg.MockMode(),
		Model:    cfg.LLMModel,
	}
	recHandler := recommendations.NewHandler(recSvc)
	supabaseSvc := pickiauth.NewSupabaseService(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	googleAuthSvc := pickiauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	supabaseSvc.RegisterRoutes(api)
	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api)
	recHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
