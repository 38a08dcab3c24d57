package app

import (
	"Tracker/internal/auth"
	"Tracker/internal/cache"
	"Tracker/internal/config"
	"Tracker/internal/handlers"
	"Tracker/internal/notify"
	"Tracker/internal/repo"
	"Tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	api := r.Group("/api")

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	dispatcher := newDispatcher(cfg.Notify)

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, tokens, dispatcher, cfg.Notify.ResetURLBase)
	authHandler := handlers.NewAuthHandler(userSvc, tokens)
	registerUserRoutes(api, authHandler)

	protected := api.Group("", auth.RequireAuth(tokens))
	issueRepo := repo.NewPGIssueRepo(db)
	issueCache := cache.NewIssueCache(rdb, cfg.Redis.DefaultTTL.Duration())
	issueSvc := service.NewIssueService(issueRepo, issueCache, dispatcher)
	issueHandler := handlers.NewIssueHandler(issueSvc)
	registerIssueRoutes(protected, issueHandler)
}

// newDispatcher builds the notification fan-out. Channels without credentials
// stay nil and are reported as skipped.
func newDispatcher(cfg config.NotifyConfig) *notify.Dispatcher {
	var sms notify.Channel
	if cfg.TwilioAccountSID != "" {
		sms = notify.NewTwilioChannel(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}
	var email notify.Channel
	if cfg.SendgridAPIKey != "" {
		email = notify.NewSendgridChannel(cfg.SendgridAPIKey, cfg.EmailFrom)
	}
	return notify.NewDispatcher(sms, email, cfg.ChannelTimeout.Duration())
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Issue Tracker API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/users/register", h.Register)
	api.POST("/users/login", h.Login)
	api.POST("/users/reset-password", h.ResetPassword)
	api.POST("/users/update-password", h.UpdatePassword)
}

func registerIssueRoutes(api *gin.RouterGroup, h *handlers.IssueHandler) {
	api.POST("/issues", h.Create)
	api.GET("/issues", h.List)
	api.GET("/issues/stats", h.Stats)
	api.PUT("/issues/:id", h.Update)
	api.DELETE("/issues/:id", h.Delete)
}
