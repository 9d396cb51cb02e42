package services

import (
	"fmt"
	"math"
	"testing"

	"finai/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticCandles(n int) []models.Candle {
	out := make([]models.Candle, n)
	for i := range out {
		// uneven closes so every window has a distinct mean
		out[i] = models.Candle{
			Date:  fmt.Sprintf("2024-01-%02d", i%28+1),
			Close: float64(100 + i*i%17 + i),
		}
	}
	return out
}

func TestMovingAverageWindow50Over60Points(t *testing.T) {
	candles := syntheticCandles(60)

	got := MovingAverage(candles, 50)
	require.Len(t, got, 11)

	for k, p := range got {
		idx := k + 49
		var sum float64
		for j := idx - 49; j <= idx; j++ {
			sum += candles[j].Close
		}
		assert.InDelta(t, sum/50, p.MovingAverage, 1e-9, "point %d", k)
		assert.Equal(t, candles[idx].Date, p.Date)
	}
}

func TestMovingAverageHandComputed(t *testing.T) {
	candles := []models.Candle{
		{Date: "d1", Close: 1}, {Date: "d2", Close: 2}, {Date: "d3", Close: 3},
		{Date: "d4", Close: 4}, {Date: "d5", Close: 10},
	}
	got := MovingAverage(candles, 3)
	assert.Equal(t, []models.MovingAveragePoint{
		{Date: "d3", MovingAverage: 2},
		{Date: "d4", MovingAverage: 3},
		{Date: "d5", MovingAverage: 17.0 / 3},
	}, got)
}

func TestMovingAverageShortSeries(t *testing.T) {
	assert.Empty(t, MovingAverage(syntheticCandles(49), 50))
	assert.Len(t, MovingAverage(syntheticCandles(50), 50), 1)
	assert.Empty(t, MovingAverage(syntheticCandles(10), 0))

	ind := TechnicalIndicators(syntheticCandles(100))
	assert.Len(t, ind["50-dayMA"], 51)
	assert.Empty(t, ind["200-dayMA"])
}

func TestCountSentiment(t *testing.T) {
	s := CountSentiment([]string{"positive", "negative", "positive", "neutral", "positive", "other"})
	assert.Equal(t, 3, s.PositiveNews)
	assert.Equal(t, 1, s.NegativeNews)
	assert.InDelta(t, 0.75, float64(s.SentimentRatio), 1e-12)

	s = CountSentiment([]string{"negative"})
	assert.Equal(t, 0.0, float64(s.SentimentRatio))
}

func TestCountSentimentWithoutPolarityIsNaN(t *testing.T) {
	s := CountSentiment([]string{"neutral", "other"})
	assert.Zero(t, s.PositiveNews)
	assert.Zero(t, s.NegativeNews)
	assert.True(t, math.IsNaN(float64(s.SentimentRatio)))

	assert.True(t, math.IsNaN(float64(CountSentiment(nil).SentimentRatio)))
}

func TestPolarity(t *testing.T) {
	assert.Equal(t, SentimentPositive, polarity("Somewhat-Bullish"))
	assert.Equal(t, SentimentPositive, polarity("Bullish"))
	assert.Equal(t, SentimentNegative, polarity("Bearish"))
	assert.Equal(t, SentimentNegative, polarity("somewhat-bearish"))
	assert.Equal(t, SentimentNeutral, polarity("Neutral"))
	assert.Equal(t, SentimentNeutral, polarity(""))
}
