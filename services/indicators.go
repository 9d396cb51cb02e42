package services

import (
	"math"
	"strings"

	"finai/models"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// MovingAverage returns the simple moving average of closes over period.
// Candles must be in chronological order. A point is emitted for every index
// whose trailing window is full, so the result has len(candles)-period+1
// entries (none when there are fewer candles than period).
func MovingAverage(candles []models.Candle, period int) []models.MovingAveragePoint {
	if period <= 0 || len(candles) < period {
		return []models.MovingAveragePoint{}
	}

	out := make([]models.MovingAveragePoint, 0, len(candles)-period+1)
	var sum float64
	for i, c := range candles {
		sum += c.Close
		if i >= period {
			sum -= candles[i-period].Close
		}
		if i < period-1 {
			continue
		}
		out = append(out, models.MovingAveragePoint{
			Date:          c.Date,
			MovingAverage: sum / float64(period),
		})
	}
	return out
}

// TechnicalIndicators builds the 50 and 200 day moving average series.
func TechnicalIndicators(candles []models.Candle) map[string][]models.MovingAveragePoint {
	return map[string][]models.MovingAveragePoint{
		"50-dayMA":  MovingAverage(candles, 50),
		"200-dayMA": MovingAverage(candles, 200),
	}
}

// CountSentiment counts positive and negative labels. The ratio is
// positive/(positive+negative) and is NaN when neither label occurs.
func CountSentiment(labels []string) models.Sentiment {
	var pos, neg int
	for _, l := range labels {
		switch l {
		case SentimentPositive:
			pos++
		case SentimentNegative:
			neg++
		}
	}
	ratio := math.NaN()
	if pos+neg > 0 {
		ratio = float64(pos) / float64(pos+neg)
	}
	return models.Sentiment{
		PositiveNews:   pos,
		NegativeNews:   neg,
		SentimentRatio: models.Ratio(ratio),
	}
}

// polarity maps Alpha Vantage sentiment labels onto positive/negative/neutral.
func polarity(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "bullish", "somewhat-bullish", "positive":
		return SentimentPositive
	case "bearish", "somewhat-bearish", "negative":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
