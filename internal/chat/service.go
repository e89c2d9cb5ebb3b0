// Package chat answers free-text portfolio questions. Intent detection is
// keyword based and deterministic; the reply for a given query and portfolio
// is always the same string.
package chat

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/models"
)

// Canonical reply strings. These are part of the assistant's contract with
// its frontends and must not be reworded.
const (
	blankInputHelp = `Please enter a valid query. Examples: "suggest top 5 stocks", "suggest top 3 crypto", "top 5 assets", or "is my portfolio concentrated?"`
	defaultHelp    = "**Try:** suggest top 5 stocks | suggest top 3 crypto | top 5 assets | is my portfolio concentrated?"

	noStockSuggestions  = "No stock suggestions available."
	noCryptoSuggestions = "No crypto suggestions available."
	noAssetSuggestions  = "No asset suggestions available."
)

// defaultSuggestionCount applies when the query contains no number.
const defaultSuggestionCount = 3

var numberPattern = regexp.MustCompile(`\d+`)

// Service routes portfolio questions to the recommendation source and renders
// the reply.
type Service struct {
	source   models.RecommendationSource
	fallback models.ChatFallback // reserved for LLM answers to unmatched queries
	logger   zerolog.Logger
}

// NewService creates a chat service. fallback may be nil.
func NewService(source models.RecommendationSource, fallback models.ChatFallback) *Service {
	return &Service{
		source:   source,
		fallback: fallback,
		logger:   log.With().Str("component", "chat_service").Logger(),
	}
}

// ProcessMessage classifies the query and builds the reply. It never fails:
// blank input and unmatched queries get fixed help texts, and collaborator
// errors degrade to the fixed "no suggestions" messages.
//
// Intents are checked in order and the first match wins, so a query naming
// both stocks and crypto is answered as a stock query.
func (s *Service) ProcessMessage(ctx context.Context, message string) string {
	if strings.TrimSpace(message) == "" {
		return blankInputHelp
	}

	msg := strings.ToLower(message)
	n := extractNumber(msg, defaultSuggestionCount)

	switch {
	case strings.Contains(msg, "concentrated") || strings.Contains(msg, "diversif"):
		return analyzeStockDiversification(s.allStocks(ctx))

	case (strings.Contains(msg, "top") || strings.Contains(msg, "suggest")) && strings.Contains(msg, "stock"):
		diversification := analyzeStockDiversification(s.allStocks(ctx))
		topStocks := s.suggestions(ctx, s.source.GetTopNStocksSuggestions, n, "stocks")
		if len(topStocks) == 0 {
			return noStockSuggestions
		}
		return buildNumberedResponse(topStocks, n, "stocks", diversification)

	case (strings.Contains(msg, "top") || strings.Contains(msg, "suggest")) && strings.Contains(msg, "crypto"):
		topCrypto := s.suggestions(ctx, s.source.GetTopNCryptoSuggestions, n, "crypto")
		if len(topCrypto) == 0 {
			return noCryptoSuggestions
		}
		return buildNumberedResponse(topCrypto, n, "crypto", "")

	case strings.Contains(msg, "top") || (strings.Contains(msg, "suggest") && strings.Contains(msg, "asset")):
		topAssets := s.suggestions(ctx, s.source.GetTopNAssetsSuggestions, n, "assets")
		if len(topAssets) == 0 {
			return noAssetSuggestions
		}
		return buildNumberedResponse(topAssets, n, "assets", "")
	}

	return defaultHelp
}

func (s *Service) allStocks(ctx context.Context) []models.Holding {
	stocks, err := s.source.GetAllStocks(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load stock holdings")
		return nil
	}
	return stocks
}

func (s *Service) suggestions(
	ctx context.Context,
	fetch func(context.Context, int) ([]models.AssetRecommendation, error),
	n int,
	kind string,
) []models.AssetRecommendation {
	recs, err := fetch(ctx, n)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("Failed to load suggestions")
		return nil
	}
	return recs
}

// extractNumber returns the first integer literal found anywhere in text.
func extractNumber(text string, defaultValue int) int {
	match := numberPattern.FindString(text)
	if match == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return defaultValue
	}
	return n
}
