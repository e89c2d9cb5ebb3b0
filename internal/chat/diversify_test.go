package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alias1177/Advisor/models"
)

func TestAnalyzeStockDiversificationBands(t *testing.T) {
	tests := []struct {
		distinct int
		band     string
	}{
		{distinct: 0, band: "**No stocks.**"},
		{distinct: 1, band: "**Concentrated.**"},
		{distinct: 2, band: "**Concentrated.**"},
		{distinct: 3, band: "**Moderate.**"},
		{distinct: 4, band: "**Moderate.**"},
		{distinct: 5, band: "**Good diversification.**"},
		{distinct: 7, band: "**Good diversification.**"},
		{distinct: 8, band: "**Well diversified.**"},
		{distinct: 12, band: "**Well diversified.**"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d stocks", tt.distinct), func(t *testing.T) {
			var stocks []models.Holding
			for i := 0; i < tt.distinct; i++ {
				stocks = append(stocks, models.Holding{Symbol: fmt.Sprintf("SYM%d", i)})
			}

			got := analyzeStockDiversification(stocks)
			assert.Contains(t, got, tt.band)
			if tt.distinct > 0 {
				assert.Contains(t, got, fmt.Sprintf("%d stock", tt.distinct))
			}
		})
	}
}

func TestAnalyzeStockDiversificationCountsDistinctSymbols(t *testing.T) {
	stocks := []models.Holding{
		{Symbol: "AAPL"},
		{Symbol: "AAPL"},
		{Symbol: "MSFT"},
	}

	got := analyzeStockDiversification(stocks)
	assert.Equal(t, "**Concentrated.** Why: You hold only 2 stock(s). Risk is high. Add more to diversify.", got)
}

func TestAnalyzeStockDiversificationExactTexts(t *testing.T) {
	tests := []struct {
		distinct int
		expected string
	}{
		{distinct: 0, expected: "**No stocks.** Why: Add stocks to see diversification."},
		{distinct: 2, expected: "**Concentrated.** Why: You hold only 2 stock(s). Risk is high. Add more to diversify."},
		{distinct: 4, expected: "**Moderate.** Why: 4 stocks. Add 1–2 more for better diversification."},
		{distinct: 6, expected: "**Good diversification.** Why: 6 stocks — balanced."},
		{distinct: 9, expected: "**Well diversified.** Why: 9 stocks — good spread, lower single-name risk."},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var stocks []models.Holding
			for i := 0; i < tt.distinct; i++ {
				stocks = append(stocks, models.Holding{Symbol: fmt.Sprintf("SYM%d", i)})
			}
			assert.Equal(t, tt.expected, analyzeStockDiversification(stocks))
		})
	}
}
