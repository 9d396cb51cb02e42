package services

import (
	"context"
	"regexp"
	"strings"

	"finai/models"
)

// FundamentalsProvider assembles a company snapshot for a ticker.
type FundamentalsProvider interface {
	Lookup(ctx context.Context, ticker string) (*models.CompanySnapshot, error)
}

var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.&\-]{0,19}$`)

// NormalizeTicker upper-cases and trims a ticker symbol, returning "" when it
// is not a plausible exchange symbol.
func NormalizeTicker(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if !tickerPattern.MatchString(t) {
		return ""
	}
	return t
}
