package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"finai/models"

	"github.com/sourcegraph/conc/pool"
)

// AlphaVantage aggregates the market-data endpoints that back the
// fundamentals search.
type AlphaVantage struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	quota      *DailyQuota
	now        func() time.Time
}

func NewAlphaVantage(apiKey, baseURL string, timeout time.Duration, quota *DailyQuota) *AlphaVantage {
	return &AlphaVantage{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		quota:      quota,
		now:        time.Now,
	}
}

// vendorNotice holds the free-text fields Alpha Vantage uses for throttling
// and error messages on otherwise successful responses.
type vendorNotice struct {
	ErrorMessage string `json:"Error Message,omitempty"`
	Information  string `json:"Information,omitempty"`
	Note         string `json:"Note,omitempty"`
}

func (n vendorNotice) rateLimited() bool {
	for _, s := range []string{n.Information, n.Note} {
		l := strings.ToLower(s)
		if strings.Contains(l, "rate limit") || strings.Contains(l, "call frequency") {
			return true
		}
	}
	return false
}

func (n vendorNotice) text() string {
	switch {
	case n.Information != "":
		return n.Information
	case n.Note != "":
		return n.Note
	}
	return n.ErrorMessage
}

type overviewResponse struct {
	vendorNotice
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Website              string `json:"Website"`
	OfficialSite         string `json:"OfficialSite"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	DividendYield        string `json:"DividendYield"`
	ReturnOnEquityTTM    string `json:"ReturnOnEquityTTM"`
}

type globalQuote struct {
	Symbol string `json:"01. symbol"`
	Price  string `json:"05. price"`
	Change string `json:"09. change"`
}

type quoteResponse struct {
	vendorNotice
	Quote *globalQuote `json:"Global Quote,omitempty"`
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type dailySeriesResponse struct {
	vendorNotice
	Series map[string]dailyBar `json:"Time Series (Daily)"`
}

type newsFeedItem struct {
	Title                 string  `json:"title"`
	URL                   string  `json:"url"`
	Summary               string  `json:"summary"`
	Source                string  `json:"source"`
	TimePublished         string  `json:"time_published"`
	OverallSentimentLabel string  `json:"overall_sentiment_label"`
	OverallSentimentScore float64 `json:"overall_sentiment_score"`
}

type newsResponse struct {
	vendorNotice
	Feed []newsFeedItem `json:"feed"`
}

// Lookup fetches overview, quote, daily series, market status and news for
// ticker concurrently. Any transport failure fails the whole lookup.
func (a *AlphaVantage) Lookup(ctx context.Context, ticker string) (*models.CompanySnapshot, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if err := a.quota.Take(a.now()); err != nil {
		return nil, err
	}

	var (
		overview overviewResponse
		quote    quoteResponse
		daily    dailySeriesResponse
		status   json.RawMessage
		news     newsResponse
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		return a.get(ctx, url.Values{"function": {"OVERVIEW"}, "symbol": {ticker}}, &overview)
	})
	p.Go(func(ctx context.Context) error {
		return a.get(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {ticker}}, &quote)
	})
	p.Go(func(ctx context.Context) error {
		return a.get(ctx, url.Values{"function": {"TIME_SERIES_DAILY"}, "symbol": {ticker}}, &daily)
	})
	p.Go(func(ctx context.Context) error {
		return a.get(ctx, url.Values{"function": {"MARKET_STATUS"}}, &status)
	})
	p.Go(func(ctx context.Context) error {
		return a.get(ctx, url.Values{"function": {"NEWS_SENTIMENT"}, "tickers": {ticker}}, &news)
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, n := range []vendorNotice{quote.vendorNotice, overview.vendorNotice, daily.vendorNotice, news.vendorNotice} {
		if n.rateLimited() {
			return nil, &UpstreamError{Err: ErrRateLimited, StatusCode: http.StatusTooManyRequests, Details: n.text()}
		}
	}
	if overview.ErrorMessage != "" || quote.Information != "" || quote.Quote == nil || quote.Quote.Symbol == "" {
		return nil, &UpstreamError{
			Err:        fmt.Errorf("%w: %s", ErrTickerNotFound, ticker),
			StatusCode: http.StatusNotFound,
			Details: map[string]any{
				"overviewError": overview.ErrorMessage,
				"quoteData":     quote,
			},
		}
	}

	candles, err := candlesFromSeries(daily.Series)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(news.Feed))
	items := make([]models.NewsItem, len(news.Feed))
	for i, f := range news.Feed {
		labels[i] = polarity(f.OverallSentimentLabel)
		items[i] = models.NewsItem{
			Title:          f.Title,
			URL:            f.URL,
			Summary:        f.Summary,
			Source:         f.Source,
			TimePublished:  f.TimePublished,
			Sentiment:      labels[i],
			SentimentScore: f.OverallSentimentScore,
		}
	}
	sentiment := CountSentiment(labels)

	website := overview.Website
	if website == "" {
		website = overview.OfficialSite
	}
	if website == "" {
		website = "N/A"
	}

	return &models.CompanySnapshot{
		Name:        overview.Name,
		Ticker:      firstNonEmpty(overview.Symbol, quote.Quote.Symbol),
		Price:       quote.Quote.Price,
		PriceChange: quote.Quote.Change,
		Date:        a.now().Format("2006-01-02"),
		Website:     website,
		About:       overview.Description,
		KeyPoints: &models.KeyPoints{
			MarketCap:     overview.MarketCapitalization,
			PERatio:       overview.PERatio,
			DividendYield: overview.DividendYield,
			ROE:           overview.ReturnOnEquityTTM,
		},
		TechnicalIndicators: TechnicalIndicators(candles),
		MarketStatus:        status,
		Sentiment:           &sentiment,
		News:                items,
		Source:              "alphavantage",
	}, nil
}

// LatestNews returns market-wide headlines.
func (a *AlphaVantage) LatestNews(ctx context.Context) ([]models.Headline, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if err := a.quota.Take(a.now()); err != nil {
		return nil, err
	}

	var news newsResponse
	params := url.Values{"function": {"NEWS_SENTIMENT"}, "topics": {"financial_markets"}, "limit": {"50"}}
	if err := a.get(ctx, params, &news); err != nil {
		return nil, err
	}
	if news.rateLimited() {
		return nil, &UpstreamError{Err: ErrRateLimited, StatusCode: http.StatusTooManyRequests, Details: news.text()}
	}

	out := make([]models.Headline, 0, len(news.Feed))
	for _, f := range news.Feed {
		if f.Title == "" || f.URL == "" {
			continue
		}
		out = append(out, models.Headline{Name: f.Title, URL: f.URL})
	}
	return out, nil
}

func (a *AlphaVantage) get(ctx context.Context, params url.Values, out any) error {
	fn := params.Get("function")
	params.Set("apikey", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", fn, err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alpha vantage %s: %w", fn, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", fn, err)
	}
	if resp.StatusCode >= 300 {
		return &UpstreamError{
			Err:        fmt.Errorf("alpha vantage %s failed", fn),
			StatusCode: resp.StatusCode,
			Details:    string(body),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, fn, err)
	}
	return nil
}

// candlesFromSeries converts the date-keyed series into chronological bars.
func candlesFromSeries(series map[string]dailyBar) ([]models.Candle, error) {
	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]models.Candle, 0, len(dates))
	for _, d := range dates {
		bar := series[d]
		var c models.Candle
		c.Date = d
		for _, f := range []struct {
			raw string
			dst *float64
		}{
			{bar.Open, &c.Open}, {bar.High, &c.High}, {bar.Low, &c.Low},
			{bar.Close, &c.Close}, {bar.Volume, &c.Volume},
		} {
			v, err := strconv.ParseFloat(f.raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: TIME_SERIES_DAILY %s: %v", ErrInvalidResponse, d, err)
			}
			*f.dst = v
		}
		out = append(out, c)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
