package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/http/middleware"
	"adclick_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// StartView stamps the beginning of an ad view for the server-side dwell
// check. The client calls it when entering the viewing state.
func (h *Handler) StartView(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	adID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ad id"})
		return
	}

	if err := h.Dwell.MarkViewing(c.Request.Context(), userID, adID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"viewing":       true,
		"min_dwell_sec": int(h.Dwell.MinDwell().Seconds()),
	})
}

// Click credits one completed ad view and reports exactly one of the three
// outcome popups: plain earnings, bonus reached, or milestone reached.
func (h *Handler) Click(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	adID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ad id"})
		return
	}

	ctx := c.Request.Context()

	if err := h.Dwell.CheckElapsed(ctx, userID, adID); err != nil {
		middleware.AdClicks.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusTooEarly, gin.H{"error": "minimum view time not elapsed"})
		return
	}

	outcome, err := h.Ledger.CreditAdClick(ctx, userID, adID)
	if err != nil {
		h.clickError(c, err)
		return
	}

	middleware.AdClicks.WithLabelValues(string(outcome.Kind)).Inc()
	h.Hub.PublishOutcome(userID, outcome)

	switch outcome.Kind {
	case domain.OutcomeBonus:
		c.JSON(http.StatusOK, gin.H{
			"bonusReached":  true,
			"bonusAdsCount": outcome.BonusAdsCount,
			"bonusAmount":   outcome.BonusAmount,
			"bannerUrl":     outcome.BannerURL,
		})
	case domain.OutcomeMilestone:
		c.JSON(http.StatusOK, gin.H{
			"milestoneReached": true,
			"milestoneReward":  outcome.MilestoneReward,
			"milestoneAmount":  outcome.MilestoneAmount,
			"ongoingMilestone": outcome.OngoingMilestone,
			"bannerUrl":        outcome.BannerURL,
		})
	default:
		c.JSON(http.StatusOK, gin.H{"earnings": outcome.Earnings})
	}
}

func (h *Handler) clickError(c *gin.Context, err error) {
	var locked *service.LockedError
	switch {
	case errors.As(err, &locked):
		middleware.AdClicks.WithLabelValues("locked").Inc()
		c.JSON(http.StatusLocked, gin.H{
			"locked":          true,
			"milestoneAmount": locked.MilestoneAmount,
			"milestoneReward": locked.MilestoneReward,
		})
	case errors.Is(err, service.ErrNotActive):
		middleware.AdClicks.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "account is not active"})
	case errors.Is(err, service.ErrAdNotFound), errors.Is(err, service.ErrUserNotFound):
		middleware.AdClicks.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrAdInactive):
		middleware.AdClicks.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": "ad is no longer active"})
	default:
		middleware.AdClicks.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to credit click"})
	}
}
