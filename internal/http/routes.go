package http

import (
	"time"

	"adclick_webapp/internal/config"
	"adclick_webapp/internal/http/handlers"
	"adclick_webapp/internal/http/middleware"
	"adclick_webapp/internal/service"
	"adclick_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the API surface: public auth, the authenticated click
// flow, the admin surface, health probes, and the reward event stream.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	dwell := service.NewDwellTracker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, time.Duration(cfg.MinDwellSeconds)*time.Second)
	hub := ws.NewHub()
	h := handlers.NewHandler(db, dwell, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiWindow := time.Duration(cfg.APIRateWindowSeconds) * time.Second
	authWindow := time.Duration(cfg.AuthRateWindowSeconds) * time.Second
	clickWindow := time.Duration(cfg.ClickRateWindowSeconds) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, apiWindow))
	registerAPIRoutes(v1, h, cfg, authWindow, clickWindow)

	// legacy unversioned prefix kept for older clients
	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, apiWindow))
	registerAPIRoutes(api, h, cfg, authWindow, clickWindow)

	r.GET("/ws", ws.HandleWS(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config, authWindow, clickWindow time.Duration) {
	authRL := middleware.RateLimit(cfg.AuthRateLimit, authWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	api.GET("/me", middleware.JWT(), h.Me)

	// The click flow: catalog, rotation pick, view stamp, completion. The
	// completion endpoint carries its own per-user limit on top of the
	// server-side dwell check.
	clickRL := middleware.UserRateLimit(cfg.ClickRateLimit, clickWindow)
	api.GET("/ads", h.ListAds)
	api.GET("/ads/current", middleware.JWT(), h.CurrentAd)
	api.POST("/ads/:id/view", middleware.JWT(), h.StartView)
	api.POST("/ads/:id/click", middleware.JWT(), clickRL, h.Click)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(), middleware.AdminOnly(cfg.AdminUserIDs))
	{
		admin.GET("/users/:id", h.GetUserAdmin)
		admin.POST("/users/:id/restrict", h.Restrict)
		admin.POST("/users/:id/unrestrict", h.Unrestrict)
		admin.POST("/users/:id/add-value", h.AddValue)
		admin.POST("/users/:id/activate", h.Activate)
		admin.POST("/users/:id/freeze", h.Freeze)

		admin.GET("/ads", h.ListAllAds)
		admin.POST("/ads", h.CreateAd)
		admin.PATCH("/ads/:id/active", h.SetAdActive)

		admin.PUT("/settings/bonus", h.UpdateBonusSettings)
	}
}
