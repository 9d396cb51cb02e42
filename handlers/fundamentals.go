package handlers

import (
	"log"
	"net/http"

	"finai/services"

	"github.com/gin-gonic/gin"
)

// SearchFundamentals serves the market data aggregate for ?ticker=.
func (h *Handler) SearchFundamentals(c *gin.Context) {
	h.lookup(c, h.Fundamentals)
}

// ScrapeFundamentals serves ratios scraped from the company page.
func (h *Handler) ScrapeFundamentals(c *gin.Context) {
	h.lookup(c, h.Scraper)
}

func (h *Handler) lookup(c *gin.Context, provider services.FundamentalsProvider) {
	raw := c.Query("ticker")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticker symbol is required"})
		return
	}
	ticker := services.NormalizeTicker(raw)
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticker symbol"})
		return
	}

	snap, err := provider.Lookup(c.Request.Context(), ticker)
	if err != nil {
		log.Printf("[fundamentals] %s: %v", ticker, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
