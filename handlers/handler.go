package handlers

import (
	"context"
	"time"

	"finai/config"
	"finai/db"
	"finai/models"
	"finai/services"
)

type NewsSource interface {
	LatestNews(ctx context.Context) ([]models.Headline, error)
}

type ScreenSource interface {
	ScreenTable(ctx context.Context, pageURL string) ([]map[string]string, error)
}

type Analyst interface {
	Analyze(ctx context.Context, kind, subject string) (*models.Analysis, error)
	PersonalFinancePlan(ctx context.Context, info map[string]any) (*models.Analysis, error)
}

type Notifications interface {
	Welcome(u *models.User)
	PlanChanged(u *models.User, tier, status string)
}

// QuotaGauge reports how many market data calls are left today.
type QuotaGauge interface {
	Remaining(now time.Time) int
}

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	Users        db.UserStore
	Tokens       *services.TokenIssuer
	Plans        *config.PlanCatalog
	Fundamentals services.FundamentalsProvider
	Scraper      services.FundamentalsProvider
	News         NewsSource
	Screens      ScreenSource
	StocksURL    string
	Analyst      Analyst
	Notifier     Notifications
	Quota        QuotaGauge
	TokenTTL     time.Duration
}

func (h *Handler) notify(fn func(Notifications)) {
	if h.Notifier == nil {
		return
	}
	go fn(h.Notifier)
}
