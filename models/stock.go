package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Candle is one daily OHLCV bar.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type MovingAveragePoint struct {
	Date          string  `json:"date"`
	MovingAverage float64 `json:"movingAverage"`
}

// Ratio is a float that encodes NaN and infinities as JSON null.
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

type Sentiment struct {
	PositiveNews   int   `json:"positiveNews"`
	NegativeNews   int   `json:"negativeNews"`
	SentimentRatio Ratio `json:"sentimentRatio"`
}

type NewsItem struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Summary        string  `json:"summary,omitempty"`
	Source         string  `json:"source,omitempty"`
	TimePublished  string  `json:"time_published,omitempty"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Headline is the trimmed news shape served on /api/news.
type Headline struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type KeyPoints struct {
	MarketCap     string `json:"marketCap"`
	PERatio       string `json:"peRatio"`
	DividendYield string `json:"dividendYield"`
	ROE           string `json:"roe"`
}

// CompanySnapshot is rebuilt from upstream sources on every request.
type CompanySnapshot struct {
	Name                string                          `json:"name"`
	Ticker              string                          `json:"ticker"`
	Price               string                          `json:"price"`
	PriceChange         string                          `json:"priceChange,omitempty"`
	Date                string                          `json:"date"`
	Website             string                          `json:"website,omitempty"`
	About               string                          `json:"about,omitempty"`
	KeyPoints           *KeyPoints                      `json:"keyPoints,omitempty"`
	Ratios              map[string]float64              `json:"ratios,omitempty"`
	TechnicalIndicators map[string][]MovingAveragePoint `json:"technicalIndicators,omitempty"`
	MarketStatus        json.RawMessage                 `json:"marketStatus,omitempty"`
	Sentiment           *Sentiment                      `json:"sentiment,omitempty"`
	News                []NewsItem                      `json:"news,omitempty"`
	Source              string                          `json:"source"`
}
