package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"office-log-backend/config"
	"office-log-backend/internal/mw"
	"office-log-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		// No allow-list configured: open CORS, but then credentials must
		// stay off per the CORS spec.
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	handler := NewHandler(s, cfg)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	loginThrottle := mw.LoginThrottle(
		cfg.Auth.LoginMaxAttempts,
		time.Duration(cfg.Auth.LoginWindowMinutes)*time.Minute,
		"Too many login attempts. Please try again later.",
	)
	requireAuth := mw.RequireAuth([]byte(cfg.Auth.JWTSecret))

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)

	api.POST("/login", loginThrottle, handler.Login)

	authed := api.Group("", requireAuth)
	{
		authed.GET("/offices", caching, handler.GetOffices)
		authed.GET("/employees", caching, handler.GetEmployees)
		authed.GET("/stats", handler.GetStats)

		authed.GET("/repairs", handler.ListRepairs)
		authed.GET("/repairs/all", handler.ListAllRepairs)
		authed.POST("/repairs", handler.CreateRepair)
		authed.PATCH("/repairs/:id/condition", handler.SetRepairCondition)
		authed.PATCH("/repairs/:id/release", handler.ReleaseRepair)
		authed.DELETE("/repairs/:id", handler.DeleteRepair)

		authed.GET("/borrowed", handler.ListBorrows)
		authed.POST("/borrowed", handler.CreateBorrow)
		authed.PATCH("/borrowed/:id/return", handler.ReturnBorrow)
		authed.DELETE("/borrowed/:id", handler.DeleteBorrow)

		authed.GET("/reservations", handler.ListReservations)
		authed.POST("/reservations", handler.CreateReservation)
		authed.PATCH("/reservations/:id/return", handler.ReturnReservation)
		authed.DELETE("/reservations/:id", handler.DeleteReservation)

		authed.GET("/tech4ed", handler.ListTech4Ed)
		authed.GET("/tech4ed/active", handler.ListActiveSessions)
		authed.POST("/tech4ed", handler.StartSession)
		authed.POST("/tech4ed/entry", handler.LogEntry)
		authed.PATCH("/tech4ed/:id/timeout", handler.TimeOutSession)
	}

	return r
}
