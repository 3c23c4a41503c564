package handlers

import (
	"errors"
	"net/http"

	"adclick_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAds returns the active catalog.
func (h *Handler) ListAds(c *gin.Context) {
	ads, err := h.AdRepo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

// CurrentAd returns the ad the user should see next in the rotation. An empty
// rotation is not an error: the client renders its "all completed" state.
func (h *Handler) CurrentAd(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ad, err := h.Ledger.CurrentAd(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveAds) {
			c.JSON(http.StatusOK, gin.H{"all_completed": true})
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to pick ad"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ad": ad})
}
