package chat

import (
	"fmt"

	"github.com/Alias1177/Advisor/models"
)

// analyzeStockDiversification classifies the portfolio by how many distinct
// stock symbols it holds. Bands are checked in order; the first match wins.
func analyzeStockDiversification(stocks []models.Holding) string {
	if len(stocks) == 0 {
		return "**No stocks.** Why: Add stocks to see diversification."
	}

	distinct := make(map[string]struct{}, len(stocks))
	for _, s := range stocks {
		distinct[s.Symbol] = struct{}{}
	}
	total := len(distinct)

	switch {
	case total <= 2:
		return fmt.Sprintf("**Concentrated.** Why: You hold only %d stock(s). Risk is high. Add more to diversify.", total)
	case total <= 4:
		return fmt.Sprintf("**Moderate.** Why: %d stocks. Add 1–2 more for better diversification.", total)
	case total >= 8:
		return fmt.Sprintf("**Well diversified.** Why: %d stocks — good spread, lower single-name risk.", total)
	default:
		return fmt.Sprintf("**Good diversification.** Why: %d stocks — balanced.", total)
	}
}
