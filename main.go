package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"finai/config"
	"finai/db"
	"finai/handlers"
	"finai/middleware"
	"finai/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

func setupLogging(path string) {
	if path == "" {
		return
	}
	out := io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	})
	log.SetOutput(out)
	gin.DefaultWriter = out
	gin.DefaultErrorWriter = out
}

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogFile)

	if cfg.JWTSecret == "" {
		log.Fatal("SECRET_KEY must be set")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer conn.Close()

	plans, err := config.LoadPlans()
	if err != nil {
		log.Fatal("Failed to load plans: ", err)
	}

	features := config.LoadFeatures()
	log.Printf("Features: plan_gating=%v notifications=%v", features.PlanGatingEnabled, features.NotificationsEnabled)

	notifier := services.NewNotifier(services.NotifierConfig{
		Enabled:         features.NotificationsEnabled,
		SendGridKey:     cfg.SendGridKey,
		MailFrom:        cfg.MailFrom,
		SlackWebhookURL: cfg.SlackWebhookURL,
	})

	quota := services.NewDailyQuota(cfg.DailyQuota, time.Now())
	quota.OnExhausted = notifier.QuotaExhausted

	users := db.NewUserStore(conn)
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	vantage := services.NewAlphaVantage(cfg.AlphaVantageKey, cfg.AlphaVantageURL, cfg.UpstreamTimeout, quota)
	screener := services.NewScreener(cfg.ScreenerURL, cfg.UpstreamTimeout)
	gemini := services.NewGemini(cfg.GeminiKey, cfg.GeminiURL, cfg.GeminiModel, cfg.UpstreamTimeout)

	h := &handlers.Handler{
		Users:        users,
		Tokens:       tokens,
		Plans:        plans,
		Fundamentals: vantage,
		Scraper:      screener,
		News:         vantage,
		Screens:      screener,
		StocksURL:    cfg.StocksScreenURL,
		Analyst:      services.NewAnalyst(gemini),
		Notifier:     notifier,
		Quota:        quota,
		TokenTTL:     cfg.TokenTTL,
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigin))
	registerRoutes(r, h, tokens, users, plans)

	fmt.Println("Server starting on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func registerRoutes(r *gin.Engine, h *handlers.Handler, tokens *services.TokenIssuer, users *db.SQLUserStore, plans *config.PlanCatalog) {
	gate := func(feature string) gin.HandlerFunc {
		return middleware.RequireFeature(tokens, users, plans, feature)
	}
	auth := middleware.AuthRequired(tokens)

	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", auth, h.Me)

		api.GET("/subscription/plans", h.ListPlans)
		api.GET("/subscription", auth, h.GetSubscription)
		api.POST("/subscription", auth, h.UpgradePlan)
		api.DELETE("/subscription", auth, h.DowngradePlan)

		api.GET("/dashboard", auth, h.Dashboard)

		api.GET("/fundamentals/search", gate(services.FeatureFundamentals), h.SearchFundamentals)
		api.GET("/fundamentals/scrape", gate(services.FeatureFundamentals), h.ScrapeFundamentals)

		api.POST("/finspect/analyze", gate(services.FeatureAnalysisFundamental), h.Analyze)
		api.POST("/finspect/analyze/sector", gate(services.FeatureAnalysisSector), h.AnalyzeSector)
		api.POST("/finspect/analyze/fundamental", gate(services.FeatureAnalysisFundamental), h.AnalyzeFundamental)

		api.POST("/personal-finance/plan", gate(services.FeaturePersonalFinance), h.PersonalFinancePlan)

		api.GET("/news", h.MarketNews)
		api.GET("/stocks", h.Stocks)
	}
}
