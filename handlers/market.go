package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Fin.AI API"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) MarketNews(c *gin.Context) {
	items, err := h.News.LatestNews(c.Request.Context())
	if err != nil {
		log.Printf("[news] %v", err)
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			body = gin.H{"error": "An error occurred while fetching news data"}
		}
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newsItems": items})
}

func (h *Handler) Stocks(c *gin.Context) {
	rows, err := h.Screens.ScreenTable(c.Request.Context(), h.StocksURL)
	if err != nil {
		log.Printf("[stocks] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching stock data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stocks": rows})
}

// Dashboard summarises the signed-in user's account.
func (h *Handler) Dashboard(c *gin.Context) {
	user, err := h.Users.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	user.Token = ""

	body := gin.H{
		"user": user,
		"plan": h.planFor(user.SubscriptionTier),
	}
	if h.Quota != nil {
		body["marketDataCallsLeft"] = h.Quota.Remaining(time.Now())
	}
	c.JSON(http.StatusOK, body)
}
