package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioMarshalsNaNAsNull(t *testing.T) {
	b, err := json.Marshal(Sentiment{SentimentRatio: Ratio(math.NaN())})
	require.NoError(t, err)
	assert.JSONEq(t, `{"positiveNews":0,"negativeNews":0,"sentimentRatio":null}`, string(b))

	b, err = json.Marshal(Sentiment{PositiveNews: 3, NegativeNews: 1, SentimentRatio: 0.75})
	require.NoError(t, err)
	assert.JSONEq(t, `{"positiveNews":3,"negativeNews":1,"sentimentRatio":0.75}`, string(b))
}
