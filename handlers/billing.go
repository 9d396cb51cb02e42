package handlers

import (
	"log"
	"net/http"

	"finai/config"
	"finai/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.Plans.Plans})
}

func (h *Handler) GetSubscription(c *gin.Context) {
	user, err := h.Users.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription_tier":   user.SubscriptionTier,
		"subscription_status": user.SubscriptionStatus,
		"plan":                h.planFor(user.SubscriptionTier),
	})
}

func (h *Handler) UpgradePlan(c *gin.Context) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if !services.IsPaidPlan(req.Plan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan. Must be one of 'bronze', 'silver', 'gold' or 'diamond'."})
		return
	}
	h.changePlan(c, services.NormalizePlan(req.Plan), services.StatusActive, "Upgraded successfully")
}

func (h *Handler) DowngradePlan(c *gin.Context) {
	h.changePlan(c, services.PlanFree, services.StatusCancelled, "Downgraded to free")
}

func (h *Handler) changePlan(c *gin.Context, tier, status, message string) {
	ctx := c.Request.Context()
	userID := c.GetString("userID")
	if err := h.Users.UpdateSubscription(ctx, userID, tier, status); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.Users.GetUserByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[billing] user %s now on %s (%s)", userID, tier, status)
	h.notify(func(n Notifications) { n.PlanChanged(user, tier, status) })
	c.JSON(http.StatusOK, gin.H{
		"message":             message,
		"subscription_tier":   tier,
		"subscription_status": status,
	})
}

func (h *Handler) planFor(tier string) config.Plan {
	if p, ok := h.Plans.Get(tier); ok {
		return p
	}
	p, _ := h.Plans.Get(services.PlanFree)
	return p
}
