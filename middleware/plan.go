package middleware

import (
	"errors"
	"log"
	"net/http"

	"finai/config"
	"finai/db"
	"finai/models"
	"finai/services"

	"github.com/gin-gonic/gin"
)

// RequireFeature blocks callers whose plan does not include feature. It is a
// no-op unless PLAN_GATING_ENABLED is set.
func RequireFeature(tokens *services.TokenIssuer, users db.UserStore, plans *config.PlanCatalog, feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.LoadFeatures().PlanGatingEnabled {
			c.Next()
			return
		}

		if !authenticate(c, tokens) {
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), c.GetString("userID"))
		if errors.Is(err, db.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if err != nil {
			log.Printf("[plan] load user %s: %v", c.GetString("userID"), err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if PlanAllows(plans, user, feature) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, UpgradeRequired(plans, user, feature))
	}
}

// PlanAllows reports whether user's plan includes feature. Subscriptions
// that are not active only get the free plan's features.
func PlanAllows(plans *config.PlanCatalog, user *models.User, feature string) bool {
	if user.SubscriptionStatus == services.StatusActive && plans.Allows(user.SubscriptionTier, feature) {
		return true
	}
	return plans.Allows(services.PlanFree, feature)
}

// UpgradeRequired is the 403 body for a feature the caller's plan lacks.
func UpgradeRequired(plans *config.PlanCatalog, user *models.User, feature string) gin.H {
	body := gin.H{"error": "Upgrade required", "feature": feature, "current_plan": user.SubscriptionTier}
	if p, ok := plans.Cheapest(feature); ok {
		body["required_plan"] = p.ID
	}
	return body
}
