package handlers

import (
	"adclick_webapp/internal/repository"
	"adclick_webapp/internal/service"
	"adclick_webapp/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB        *pgxpool.Pool
	UserRepo  *repository.UserRepository
	AdRepo    *repository.AdRepository
	Settings  *repository.SettingsRepository
	Auth      *service.AuthService
	Ledger    *service.LedgerService
	Promotion *service.PromotionService
	Dwell     *service.DwellTracker
	Hub       *ws.Hub
}

func NewHandler(db *pgxpool.Pool, dwell *service.DwellTracker, hub *ws.Hub) *Handler {
	userRepo := repository.NewUserRepository(db)
	store := service.NewStore(db)

	return &Handler{
		DB:        db,
		UserRepo:  userRepo,
		AdRepo:    repository.NewAdRepository(db),
		Settings:  repository.NewSettingsRepository(db),
		Auth:      service.NewAuthService(userRepo),
		Ledger:    service.NewLedgerService(store),
		Promotion: service.NewPromotionService(store),
		Dwell:     dwell,
		Hub:       hub,
	}
}

// getUserID pulls the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
