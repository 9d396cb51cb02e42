package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func fixedAnalyst(gen TextGenerator) *Analyst {
	a := NewAnalyst(gen)
	a.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return a
}

func completeProfile() map[string]any {
	return map[string]any{
		"age":                   float64(32),
		"retirementAge":         float64(60),
		"annualIncome":          float64(1800000),
		"jobStability":          "stable",
		"majorExpenses":         "home loan",
		"outstandingDebts":      float64(0),
		"shortTermGoals":        "car",
		"longTermGoals":         "early retirement",
		"savingsAndInvestments": "mutual funds",
		"riskTolerance":         "moderate",
		"dependents":            float64(2),
		"insuranceCoverage":     "term plan",
		"expectedLifeChanges":   "none",
	}
}

func TestAnalyzeSector(t *testing.T) {
	gen := &recordingGenerator{reply: "Sector looks strong."}
	res, err := fixedAnalyst(gen).Analyze(context.Background(), KindSector, "Banking")
	require.NoError(t, err)

	assert.Equal(t, "Sector looks strong.", res.Analysis)
	assert.Equal(t, "2024-03-01T09:30:00Z", res.Timestamp)
	assert.Equal(t, investmentDisclaimer, res.Disclaimer)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Indian Banking")
	assert.NotContains(t, gen.prompts[0], "[SECTOR]")
}

func TestAnalyzeFundamental(t *testing.T) {
	gen := &recordingGenerator{reply: "ok"}
	_, err := fixedAnalyst(gen).Analyze(context.Background(), KindFundamental, "Infosys")
	require.NoError(t, err)
	assert.NotContains(t, gen.prompts[0], "[COMPANY]")
	assert.Contains(t, gen.prompts[0], "Infosys")
}

func TestAnalyzeValidation(t *testing.T) {
	gen := &recordingGenerator{}
	_, err := fixedAnalyst(gen).Analyze(context.Background(), "technical", "")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 2)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, gen.prompts)
}

func TestAnalyzeGeneratorError(t *testing.T) {
	gen := &recordingGenerator{err: ErrNotConfigured}
	_, err := fixedAnalyst(gen).Analyze(context.Background(), KindSector, "IT")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPersonalFinancePlan(t *testing.T) {
	gen := &recordingGenerator{reply: "Save more."}
	profile := completeProfile()
	profile["city"] = "Pune"

	res, err := fixedAnalyst(gen).PersonalFinancePlan(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, planningDisclaimer, res.Disclaimer)

	prompt := gen.prompts[0]
	assert.NotContains(t, prompt, "[USER_INFO]")
	assert.Contains(t, prompt, "age: 32\nretirementAge: 60\nannualIncome: 1800000")
	assert.Contains(t, prompt, "outstandingDebts: 0")
	assert.Contains(t, prompt, "expectedLifeChanges: none\ncity: Pune")
}

func TestPersonalFinancePlanMissingField(t *testing.T) {
	for _, field := range PersonalFinanceFields {
		profile := completeProfile()
		delete(profile, field)

		gen := &recordingGenerator{}
		_, err := fixedAnalyst(gen).PersonalFinancePlan(context.Background(), profile)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), field)
		assert.Equal(t, []string{field + " is required"}, verr.Problems)
		assert.Empty(t, gen.prompts)
	}
}

func TestPresent(t *testing.T) {
	assert.True(t, present(float64(0)))
	assert.True(t, present("x"))
	assert.False(t, present(nil))
	assert.False(t, present(" "))
	assert.False(t, present(false))
	assert.True(t, strings.HasPrefix(formatValue(1.5), "1.5"))
}
