package services

import "strings"

const (
	PlanFree    = "free"
	PlanBronze  = "bronze"
	PlanSilver  = "silver"
	PlanGold    = "gold"
	PlanDiamond = "diamond"

	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Features unlocked by plans.
const (
	FeatureFundamentals        = "fundamentals"
	FeatureAnalysisFundamental = "analysis_fundamental"
	FeatureAnalysisSector      = "analysis_sector"
	FeaturePersonalFinance     = "personal_finance"
	FeatureAPIEquity           = "api_equity"
	FeatureAPIDerivatives      = "api_derivatives"
	FeatureAPICrypto           = "api_crypto"
)

var plans = []string{PlanFree, PlanBronze, PlanSilver, PlanGold, PlanDiamond}

func NormalizePlan(plan string) string {
	return strings.ToLower(strings.TrimSpace(plan))
}

func IsValidPlan(plan string) bool {
	p := NormalizePlan(plan)
	for _, known := range plans {
		if p == known {
			return true
		}
	}
	return false
}

// IsPaidPlan reports whether plan is a valid upgrade target.
func IsPaidPlan(plan string) bool {
	return IsValidPlan(plan) && NormalizePlan(plan) != PlanFree
}
