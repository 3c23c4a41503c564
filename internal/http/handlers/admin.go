package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"
	"adclick_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type restrictRequest struct {
	AdsLimit      int           `json:"adsLimit" binding:"required"`
	Deposit       money.Amount  `json:"deposit"`
	Commission    money.Amount  `json:"commission"`
	PendingAmount *money.Amount `json:"pendingAmount"`
}

// Restrict installs a promotion on the user: deposit deducted immediately,
// quota of adsLimit clicks at the given commission.
func (h *Handler) Restrict(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	var req restrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Promotion.SetRestriction(c.Request.Context(), userID, req.AdsLimit, req.Deposit, req.Commission, req.PendingAmount)
	if err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, adminUserView(u))
}

// Unrestrict clears the promotion sub-state. The deposit stays consumed.
func (h *Handler) Unrestrict(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	u, err := h.Promotion.ClearRestriction(c.Request.Context(), userID)
	if err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, adminUserView(u))
}

type addValueRequest struct {
	Field  string       `json:"field" binding:"required"`
	Amount money.Amount `json:"amount"`
}

// AddValue applies a generic admin credit to one ledger field. Accepts the
// UI aliases (bookingValue, premiumTreasure, normalTreasure) as well as the
// canonical field names.
func (h *Handler) AddValue(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	var req addValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Promotion.AdjustField(c.Request.Context(), userID, req.Field, req.Amount)
	if err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, adminUserView(u))
}

// Activate promotes a pending (or frozen) account to active.
func (h *Handler) Activate(c *gin.Context) {
	h.setStatus(c, domain.StatusActive)
}

// Freeze blocks the account from clicking.
func (h *Handler) Freeze(c *gin.Context) {
	h.setStatus(c, domain.StatusFrozen)
}

func (h *Handler) setStatus(c *gin.Context, status domain.UserStatus) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.UserRepo.SetStatus(c.Request.Context(), userID, status); err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": userID, "status": status})
}

type createAdRequest struct {
	Title    string       `json:"title" binding:"required"`
	Price    money.Amount `json:"price"`
	ImageURL string       `json:"imageUrl"`
}

func (h *Handler) CreateAd(c *gin.Context) {
	var req createAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	ad, err := h.AdRepo.Create(c.Request.Context(), req.Title, req.Price, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ad"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ad": ad})
}

type setAdActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *Handler) SetAdActive(c *gin.Context) {
	adID, ok := paramID(c)
	if !ok {
		return
	}

	var req setAdActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.AdRepo.SetActive(c.Request.Context(), adID, *req.IsActive); err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": adID, "is_active": *req.IsActive})
}

// ListAllAds returns the full catalog for the admin screen, inactive included.
func (h *Handler) ListAllAds(c *gin.Context) {
	ads, err := h.AdRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

type bonusSettingsRequest struct {
	AdsCount  int64        `json:"adsCount" binding:"required"`
	Amount    money.Amount `json:"amount"`
	BannerURL string       `json:"bannerUrl"`
}

// UpdateBonusSettings replaces the instant bonus configuration.
func (h *Handler) UpdateBonusSettings(c *gin.Context) {
	var req bonusSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	cfg := &domain.BonusConfig{AdsCount: req.AdsCount, Amount: req.Amount, BannerURL: req.BannerURL}
	if err := h.Settings.UpdateBonus(c.Request.Context(), cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bonus": cfg})
}

// GetUserAdmin returns a user's full record for the admin screen.
func (h *Handler) GetUserAdmin(c *gin.Context) {
	userID, ok := paramID(c)
	if !ok {
		return
	}

	u, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.adminError(c, err)
		return
	}
	c.JSON(http.StatusOK, adminUserView(u))
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) adminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAdNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidAdsLimit),
		errors.Is(err, service.ErrUnknownField):
		// validation messages go to the admin UI verbatim
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

func adminUserView(u *domain.UserAccount) gin.H {
	return gin.H{
		"id":                  u.ID,
		"username":            u.Username,
		"status":              u.Status,
		"destination_amount":  u.DestinationAmount,
		"milestone_amount":    u.MilestoneAmount,
		"milestone_reward":    u.MilestoneReward,
		"ongoing_milestone":   u.OngoingMilestone,
		"total_ads_completed": u.TotalAdsCompleted,
		"points":              u.Points,
		"restriction":         u.Restriction,
		"deposit_blocked":     u.DepositBlocked(),
	}
}
