package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"finai/models"
)

const (
	KindSector          = "sector"
	KindFundamental     = "fundamental"
	KindPersonalFinance = "personal_finance"
)

const (
	investmentDisclaimer = "This analysis is based on publicly available data and should not be considered as financial advice."
	planningDisclaimer   = "This financial plan is based on the information provided and should not be considered as professional financial advice. Please consult with a certified financial planner for personalized advice."
)

// PersonalFinanceFields are the inputs a personal finance plan needs, in the
// order they are listed in the prompt.
var PersonalFinanceFields = []string{
	"age", "retirementAge", "annualIncome", "jobStability",
	"majorExpenses", "outstandingDebts", "shortTermGoals",
	"longTermGoals", "savingsAndInvestments", "riskTolerance",
	"dependents", "insuranceCoverage", "expectedLifeChanges",
}

// Analyst fills prompt templates and forwards them to a text generator.
type Analyst struct {
	gen TextGenerator
	now func() time.Time
}

func NewAnalyst(gen TextGenerator) *Analyst {
	return &Analyst{gen: gen, now: time.Now}
}

// Analyze runs a sector or fundamental analysis for subject.
func (a *Analyst) Analyze(ctx context.Context, kind, subject string) (*models.Analysis, error) {
	var problems []string
	if strings.TrimSpace(subject) == "" {
		problems = append(problems, "Input is required")
	}

	var prompt string
	var err error
	switch kind {
	case KindSector:
		prompt, err = SectorPrompt.Render(map[string]string{"SECTOR": subject})
	case KindFundamental:
		prompt, err = FundamentalPrompt.Render(map[string]string{"COMPANY": subject})
	default:
		problems = append(problems, `Invalid analysis type. Must be either "sector" or "fundamental"`)
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	if err != nil {
		return nil, err
	}

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return a.wrap(text, investmentDisclaimer), nil
}

// PersonalFinancePlan checks that every required field is present and asks
// for a plan. Values are not type or range checked.
func (a *Analyst) PersonalFinancePlan(ctx context.Context, info map[string]any) (*models.Analysis, error) {
	var problems []string
	for _, f := range PersonalFinanceFields {
		if !present(info[f]) {
			problems = append(problems, f+" is required")
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	prompt, err := PersonalFinancePrompt.Render(map[string]string{"USER_INFO": describeUser(info)})
	if err != nil {
		return nil, err
	}
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return a.wrap(text, planningDisclaimer), nil
}

func (a *Analyst) wrap(text, disclaimer string) *models.Analysis {
	return &models.Analysis{
		Timestamp:  a.now().UTC().Format(time.RFC3339),
		Analysis:   text,
		Disclaimer: disclaimer,
	}
}

// present treats zero as a value but rejects nil, false and blank strings.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	default:
		return true
	}
}

// describeUser renders "key: value" lines, required fields first.
func describeUser(info map[string]any) string {
	var lines []string
	seen := make(map[string]bool, len(PersonalFinanceFields))
	for _, f := range PersonalFinanceFields {
		seen[f] = true
		lines = append(lines, f+": "+formatValue(info[f]))
	}

	var extra []string
	for k := range info {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		lines = append(lines, k+": "+formatValue(info[k]))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return strings.TrimSpace(t)
	default:
		return fmt.Sprint(t)
	}
}
