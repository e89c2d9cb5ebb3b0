package models

import (
	"context"

	"github.com/shopspring/decimal"
)

// RecommendationSource supplies the user's holdings and ranked asset
// suggestions. The ordering of returned suggestions is authoritative and
// consumers must not re-sort.
type RecommendationSource interface {
	GetAllStocks(ctx context.Context) ([]Holding, error)
	GetTopNStocksSuggestions(ctx context.Context, n int) ([]AssetRecommendation, error)
	GetTopNCryptoSuggestions(ctx context.Context, n int) ([]AssetRecommendation, error)
	GetTopNAssetsSuggestions(ctx context.Context, n int) ([]AssetRecommendation, error)
}

// MarketDataClient fetches live prices and market rankings. Implementations
// degrade to fallback values instead of returning errors.
type MarketDataClient interface {
	GetPrice(ctx context.Context, symbol string) decimal.Decimal
	GetTopMarketItems(ctx context.Context, limit int) []MarketItem
}

// ChatFallback answers queries that matched no known intent.
type ChatFallback interface {
	Reply(ctx context.Context, message string) (string, error)
}
