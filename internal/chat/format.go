package chat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/Advisor/models"
)

// buyThreshold is the profit percent at which an asset without a risk level
// becomes a Buy.
var buyThreshold = decimal.NewFromInt(20)

// buildNumberedResponse renders every recommendation it is given, in the
// order given; it never truncates the list. When fewer than requested were
// available a note says so, otherwise only the trailing newline is dropped.
func buildNumberedResponse(assets []models.AssetRecommendation, requestedN int, typeLabel, diversification string) string {
	var sb strings.Builder
	for i, a := range assets {
		action := actionFromRisk(a.RiskLevel, a.ProfitPercent)
		sb.WriteString(fmt.Sprintf("%d. **%s** – %s – %s\n", i+1, a.Symbol, action, formatPercent(a.ProfitPercent)))
	}

	out := sb.String()
	if len(assets) < requestedN {
		out += fmt.Sprintf("(Only %d %s in portfolio; you asked for %d.)", len(assets), typeLabel, requestedN)
	} else {
		out = strings.TrimSuffix(out, "\n")
	}

	if diversification != "" {
		out += "\n\n" + diversification
	}

	return strings.TrimSpace(out)
}

// actionFromRisk maps a risk level and profit percent to Review, Hold or Buy.
// Levels compare case-insensitively; an absent or unrecognized level falls
// through to the profit-threshold rule.
func actionFromRisk(riskLevel string, profitPercent decimal.NullDecimal) string {
	if riskLevel != "" {
		switch {
		case strings.EqualFold(riskLevel, "HIGH"):
			return "Review"
		case strings.EqualFold(riskLevel, "MEDIUM"):
			return "Hold"
		case strings.EqualFold(riskLevel, "LOW"):
			if profitPercent.Valid && profitPercent.Decimal.IsPositive() {
				return "Buy"
			}
			return "Hold"
		}
	}

	if profitPercent.Valid && profitPercent.Decimal.GreaterThanOrEqual(buyThreshold) {
		return "Buy"
	}
	return "Hold"
}

// formatPercent renders one decimal place, rounding half-up, with the sign
// always shown. A null percent renders as "0.0%" with no sign.
func formatPercent(percent decimal.NullDecimal) string {
	if !percent.Valid {
		return "0.0%"
	}

	sign := ""
	if percent.Decimal.Sign() >= 0 {
		sign = "+"
	}
	return sign + percent.Decimal.StringFixed(1) + "%"
}
