package handlers

import (
	"errors"
	"log"
	"net/http"

	"finai/db"
	"finai/services"

	"github.com/gin-gonic/gin"
)

// errorResponse maps an error from the service layer to a status and body.
func errorResponse(err error) (int, gin.H) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verr.Problems}
	}

	var up *services.UpstreamError
	if errors.As(err, &up) {
		body := gin.H{"error": "Upstream request failed"}
		if up.Details != nil {
			body["details"] = up.Details
		}
		status := up.StatusCode
		switch {
		case errors.Is(up.Err, services.ErrRateLimited):
			body["error"] = "API rate limit reached. Please try again later."
			status = http.StatusTooManyRequests
		case errors.Is(up.Err, services.ErrTickerNotFound):
			body["error"] = "Ticker symbol not found or API limit reached"
			status = http.StatusNotFound
		}
		if status == 0 {
			status = http.StatusBadGateway
		}
		return status, body
	}

	switch {
	case errors.Is(err, services.ErrQuotaExceeded):
		return http.StatusTooManyRequests, gin.H{"error": "API rate limit reached. Please try again tomorrow."}
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests, gin.H{"error": "API rate limit reached. Please try again later."}
	case errors.Is(err, services.ErrTickerNotFound):
		return http.StatusNotFound, gin.H{"error": "Ticker symbol not found"}
	case errors.Is(err, services.ErrNoData):
		return http.StatusNotFound, gin.H{"error": "No data could be extracted for this ticker"}
	case errors.Is(err, db.ErrUserNotFound):
		return http.StatusNotFound, gin.H{"error": "User not found"}
	case errors.Is(err, db.ErrEmailTaken):
		return http.StatusConflict, gin.H{"error": "User already exists. Please login"}
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusInternalServerError, gin.H{"error": "API key not configured"}
	case errors.Is(err, services.ErrInvalidResponse):
		return http.StatusInternalServerError, gin.H{"error": "Invalid response format"}
	}
	return http.StatusInternalServerError, gin.H{"error": "Internal Server Error"}
}

func respondError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, body)
}

// respondAnalysisError adds the success flag the analysis endpoints carry.
func respondAnalysisError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s: %v", c.Request.Method, c.FullPath(), err)
	}
	body["success"] = false
	c.JSON(status, body)
}
