package chat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Alias1177/Advisor/models"
)

func pct(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestActionFromRisk(t *testing.T) {
	tests := []struct {
		name      string
		riskLevel string
		profit    decimal.NullDecimal
		expected  string
	}{
		{name: "high is review regardless of profit", riskLevel: "HIGH", profit: pct("99"), expected: "Review"},
		{name: "high compares case-insensitively", riskLevel: "high", profit: pct("-5"), expected: "Review"},
		{name: "medium is hold", riskLevel: "MEDIUM", profit: pct("50"), expected: "Hold"},
		{name: "low with profit is buy", riskLevel: "LOW", profit: pct("5"), expected: "Buy"},
		{name: "low with loss is hold", riskLevel: "LOW", profit: pct("-1"), expected: "Hold"},
		{name: "low with zero profit is hold", riskLevel: "LOW", profit: pct("0"), expected: "Hold"},
		{name: "low with null profit is hold", riskLevel: "Low", expected: "Hold"},
		{name: "no level at threshold is buy", profit: pct("20"), expected: "Buy"},
		{name: "no level above threshold is buy", profit: pct("25"), expected: "Buy"},
		{name: "no level below threshold is hold", profit: pct("19.9"), expected: "Hold"},
		{name: "no level and null profit is hold", expected: "Hold"},
		{name: "unrecognized level falls through", riskLevel: "EXTREME", profit: pct("25"), expected: "Buy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, actionFromRisk(tt.riskLevel, tt.profit))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		percent  decimal.NullDecimal
		expected string
	}{
		{name: "positive gets a plus", percent: pct("20"), expected: "+20.0%"},
		{name: "rounds half-up", percent: pct("-3.45"), expected: "-3.5%"},
		{name: "rounds half-up positive", percent: pct("3.45"), expected: "+3.5%"},
		{name: "zero gets a plus", percent: pct("0"), expected: "+0.0%"},
		{name: "null renders unsigned zero", expected: "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatPercent(tt.percent))
		})
	}
}

func TestBuildNumberedResponseFewerThanRequested(t *testing.T) {
	assets := []models.AssetRecommendation{
		{Symbol: "AAPL", RiskLevel: "LOW", ProfitPercent: pct("12.5")},
		{Symbol: "MSFT", RiskLevel: "HIGH", ProfitPercent: pct("-3.45")},
	}

	got := buildNumberedResponse(assets, 5, "stocks", "")

	expected := "1. **AAPL** – Buy – +12.5%\n" +
		"2. **MSFT** – Review – -3.5%\n" +
		"(Only 2 stocks in portfolio; you asked for 5.)"
	assert.Equal(t, expected, got)
}

func TestBuildNumberedResponseExactCount(t *testing.T) {
	assets := []models.AssetRecommendation{
		{Symbol: "BTC", ProfitPercent: pct("25")},
		{Symbol: "ETH", ProfitPercent: pct("3")},
	}

	got := buildNumberedResponse(assets, 2, "crypto", "")

	assert.Equal(t, "1. **BTC** – Buy – +25.0%\n2. **ETH** – Hold – +3.0%", got)
	assert.NotContains(t, got, "(Only")
}

func TestBuildNumberedResponseRendersEveryItem(t *testing.T) {
	// More items than requested still all render; the list is never cut.
	assets := []models.AssetRecommendation{
		{Symbol: "A", ProfitPercent: pct("1")},
		{Symbol: "B", ProfitPercent: pct("2")},
		{Symbol: "C", ProfitPercent: pct("3")},
	}

	got := buildNumberedResponse(assets, 2, "assets", "")

	assert.Contains(t, got, "1. **A**")
	assert.Contains(t, got, "2. **B**")
	assert.Contains(t, got, "3. **C**")
	assert.NotContains(t, got, "(Only")
}

func TestBuildNumberedResponseAppendsDiversification(t *testing.T) {
	assets := []models.AssetRecommendation{
		{Symbol: "AAPL", RiskLevel: "LOW", ProfitPercent: pct("5")},
	}

	got := buildNumberedResponse(assets, 1, "stocks", "**Concentrated.** Why: You hold only 1 stock(s). Risk is high. Add more to diversify.")

	expected := "1. **AAPL** – Buy – +5.0%\n\n" +
		"**Concentrated.** Why: You hold only 1 stock(s). Risk is high. Add more to diversify."
	assert.Equal(t, expected, got)
}
