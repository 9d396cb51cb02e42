package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) PersonalFinancePlan(c *gin.Context) {
	var info map[string]any
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
		return
	}

	res, err := h.Analyst.PersonalFinancePlan(c.Request.Context(), info)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respondAnalysis(c, res)
}
