package models

import (
	"github.com/shopspring/decimal"
)

// Asset type labels stored alongside holdings.
const (
	AssetTypeStock  = "STOCK"
	AssetTypeCrypto = "CRYPTO"
)

// MarketItem is a point-in-time snapshot of one market entry. It is built
// per fetch and never persisted.
type MarketItem struct {
	Symbol                string          `json:"symbol"`
	CurrentPrice          decimal.Decimal `json:"current_price"`
	PriceChangePercent24h decimal.Decimal `json:"price_change_percent_24h"`
}

// Holding is one position in the user's portfolio.
type Holding struct {
	Symbol       string          `json:"symbol"`
	AssetType    string          `json:"asset_type"`
	Quantity     int             `json:"quantity"`
	AvgBuyPrice  decimal.Decimal `json:"avg_buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// AssetRecommendation is one ranked suggestion. RiskLevel is empty when the
// source has no risk information for the asset; ProfitPercent is null when
// there is no cost basis to compute it from.
type AssetRecommendation struct {
	Symbol        string              `json:"symbol"`
	RiskLevel     string              `json:"risk_level,omitempty"`
	ProfitPercent decimal.NullDecimal `json:"profit_percent"`
}

// RiskAssessment describes the risk of a proposed sell. It is produced by the
// risk-evaluation collaborator and consumed read-only.
type RiskAssessment struct {
	Action            string          `json:"action"`
	RiskLevel         string          `json:"risk_level"`
	AvgBuyPrice       decimal.Decimal `json:"avg_buy_price"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	PercentDifference decimal.Decimal `json:"percent_difference"`
	MonetaryImpact    decimal.Decimal `json:"monetary_impact"`
	RequestedQuantity int             `json:"requested_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	Recommendation    string          `json:"recommendation"`
}

// IsFullSell reports whether the request would close the whole position.
func (r RiskAssessment) IsFullSell() bool {
	return r.RequestedQuantity >= r.AvailableQuantity
}

// IsHighRisk matches the level "HIGH" exactly, including case.
func (r RiskAssessment) IsHighRisk() bool {
	return r.RiskLevel == "HIGH"
}
