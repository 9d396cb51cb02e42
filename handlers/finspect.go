package handlers

import (
	"net/http"

	"finai/config"
	"finai/middleware"
	"finai/models"
	"finai/services"

	"github.com/gin-gonic/gin"
)

type analyzeInput struct {
	Type    string `json:"type"`
	Input   string `json:"input"`
	Company string `json:"company"`
}

// Analyze runs a sector or fundamental analysis chosen by the request body.
// A bare "company" field is treated as a fundamental analysis request.
func (h *Handler) Analyze(c *gin.Context) {
	var in analyzeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
		return
	}
	if in.Input == "" && in.Company != "" {
		in.Input = in.Company
		if in.Type == "" {
			in.Type = services.KindFundamental
		}
	}
	if in.Type == services.KindSector && !h.allows(c, services.FeatureAnalysisSector) {
		return
	}
	h.runAnalysis(c, in.Type, in.Input)
}

// allows re-checks the caller's plan for a feature the route gate could not
// know about before the body was read.
func (h *Handler) allows(c *gin.Context, feature string) bool {
	if !config.LoadFeatures().PlanGatingEnabled {
		return true
	}
	user, err := h.Users.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondAnalysisError(c, err)
		return false
	}
	if middleware.PlanAllows(h.Plans, user, feature) {
		return true
	}
	body := middleware.UpgradeRequired(h.Plans, user, feature)
	body["success"] = false
	c.JSON(http.StatusForbidden, body)
	return false
}

func (h *Handler) AnalyzeSector(c *gin.Context) {
	h.analyzeKind(c, services.KindSector)
}

func (h *Handler) AnalyzeFundamental(c *gin.Context) {
	h.analyzeKind(c, services.KindFundamental)
}

func (h *Handler) analyzeKind(c *gin.Context, kind string) {
	var in analyzeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
		return
	}
	subject := in.Input
	if subject == "" {
		subject = in.Company
	}
	h.runAnalysis(c, kind, subject)
}

func (h *Handler) runAnalysis(c *gin.Context, kind, subject string) {
	res, err := h.Analyst.Analyze(c.Request.Context(), kind, subject)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respondAnalysis(c, res)
}

func respondAnalysis(c *gin.Context, res *models.Analysis) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}
