package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's profile and full ledger, restriction included.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  u.ID,
		"username":            u.Username,
		"email":               u.Email,
		"status":              u.Status,
		"destination_amount":  u.DestinationAmount,
		"milestone_amount":    u.MilestoneAmount,
		"milestone_reward":    u.MilestoneReward,
		"ongoing_milestone":   u.OngoingMilestone,
		"total_ads_completed": u.TotalAdsCompleted,
		"points":              u.Points,
		"restriction":         u.Restriction,
		"deposit_blocked":     u.DepositBlocked(),
		"created_at":          u.CreatedAt,
	})
}
