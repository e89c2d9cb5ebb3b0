// Package recommend ranks the user's holdings into suggestion lists. It is
// the recommendation source consumed by the chat service; the ordering it
// returns is authoritative.
package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Alias1177/Advisor/models"
)

// Absolute profit swings at which a position is graded MEDIUM or HIGH risk.
var (
	highRiskSwing   = decimal.NewFromInt(30)
	mediumRiskSwing = decimal.NewFromInt(10)
	hundred         = decimal.NewFromInt(100)
)

// assetStore is the slice of the holdings store the service needs.
type assetStore interface {
	ListAssets(ctx context.Context, assetType string) ([]models.Holding, error)
	UpdateCurrentPrice(ctx context.Context, symbol, assetType string, price decimal.Decimal) error
}

// Service implements models.RecommendationSource over the holdings store.
// Crypto suggestions are priced live and, when the portfolio holds fewer
// cryptos than requested, topped up from the market-cap ranking.
type Service struct {
	store  assetStore
	market models.MarketDataClient
	logger zerolog.Logger
}

// NewService creates a recommendation service.
func NewService(store assetStore, market models.MarketDataClient) *Service {
	return &Service{
		store:  store,
		market: market,
		logger: log.With().Str("component", "recommendation_service").Logger(),
	}
}

// GetAllStocks returns every stock holding in the portfolio.
func (s *Service) GetAllStocks(ctx context.Context) ([]models.Holding, error) {
	return s.store.ListAssets(ctx, models.AssetTypeStock)
}

// GetTopNStocksSuggestions returns up to n stock holdings ranked by profit.
func (s *Service) GetTopNStocksSuggestions(ctx context.Context, n int) ([]models.AssetRecommendation, error) {
	stocks, err := s.store.ListAssets(ctx, models.AssetTypeStock)
	if err != nil {
		return nil, err
	}
	return rankHoldings(stocks, n), nil
}

// GetTopNCryptoSuggestions returns up to n crypto suggestions. Held positions
// are repriced from the live market first; free slots are filled with the
// largest coins by market cap.
func (s *Service) GetTopNCryptoSuggestions(ctx context.Context, n int) ([]models.AssetRecommendation, error) {
	cryptos, err := s.store.ListAssets(ctx, models.AssetTypeCrypto)
	if err != nil {
		return nil, err
	}

	for i := range cryptos {
		cryptos[i].CurrentPrice = s.market.GetPrice(ctx, cryptos[i].Symbol)
		// Keep the stored quote current; a failed write only makes the next
		// cold read staler, so it is logged and not fatal.
		if err := s.store.UpdateCurrentPrice(ctx, cryptos[i].Symbol, models.AssetTypeCrypto, cryptos[i].CurrentPrice); err != nil {
			s.logger.Warn().Err(err).Str("symbol", cryptos[i].Symbol).Msg("Failed to store refreshed quote")
		}
	}

	recs := rankHoldings(cryptos, n)
	if len(recs) < n {
		held := len(recs)
		recs = s.topUpFromMarket(ctx, recs, n)
		s.logger.Debug().Int("held", held).Int("total", len(recs)).Msg("Topped up crypto suggestions from market")
	}

	return recs, nil
}

// GetTopNAssetsSuggestions returns up to n holdings of any type ranked by
// profit.
func (s *Service) GetTopNAssetsSuggestions(ctx context.Context, n int) ([]models.AssetRecommendation, error) {
	assets, err := s.store.ListAssets(ctx, "")
	if err != nil {
		return nil, err
	}
	return rankHoldings(assets, n), nil
}

// topUpFromMarket fills remaining slots from the market-cap ranking, skipping
// symbols that are already suggested. Market entries carry no risk level;
// their 24h change stands in for profit.
func (s *Service) topUpFromMarket(ctx context.Context, recs []models.AssetRecommendation, n int) []models.AssetRecommendation {
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		seen[r.Symbol] = struct{}{}
	}

	for _, item := range s.market.GetTopMarketItems(ctx, n) {
		if len(recs) >= n {
			break
		}
		if _, ok := seen[item.Symbol]; ok {
			continue
		}
		recs = append(recs, models.AssetRecommendation{
			Symbol:        item.Symbol,
			ProfitPercent: decimal.NullDecimal{Decimal: item.PriceChangePercent24h, Valid: true},
		})
		seen[item.Symbol] = struct{}{}
	}

	return recs
}

// rankHoldings orders holdings by profit percent, highest first, and keeps at
// most n. Positions without a computable profit sort last.
func rankHoldings(holdings []models.Holding, n int) []models.AssetRecommendation {
	recs := make([]models.AssetRecommendation, 0, len(holdings))
	for _, h := range holdings {
		profit := profitPercent(h)
		recs = append(recs, models.AssetRecommendation{
			Symbol:        h.Symbol,
			RiskLevel:     riskLevel(profit),
			ProfitPercent: profit,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		pi, pj := recs[i].ProfitPercent, recs[j].ProfitPercent
		if pi.Valid != pj.Valid {
			return pi.Valid
		}
		if !pi.Valid {
			return false
		}
		return pi.Decimal.GreaterThan(pj.Decimal)
	})

	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}

// profitPercent is null when there is no cost basis or quote to compare.
func profitPercent(h models.Holding) decimal.NullDecimal {
	if h.AvgBuyPrice.IsZero() || h.CurrentPrice.IsZero() {
		return decimal.NullDecimal{}
	}

	p := h.CurrentPrice.Sub(h.AvgBuyPrice).Div(h.AvgBuyPrice).Mul(hundred)
	return decimal.NullDecimal{Decimal: p, Valid: true}
}

// riskLevel grades a position by how far it has moved from its cost basis.
func riskLevel(profit decimal.NullDecimal) string {
	if !profit.Valid {
		return ""
	}

	swing := profit.Decimal.Abs()
	switch {
	case swing.GreaterThanOrEqual(highRiskSwing):
		return "HIGH"
	case swing.GreaterThanOrEqual(mediumRiskSwing):
		return "MEDIUM"
	default:
		return "LOW"
	}
}
