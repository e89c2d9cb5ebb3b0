// Package server exposes the chat assistant and the holdings store over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Alias1177/Advisor/internal/chat"
	"github.com/Alias1177/Advisor/models"
)

// assetStore is the slice of the holdings store the asset endpoints need.
type assetStore interface {
	ListAssets(ctx context.Context, assetType string) ([]models.Holding, error)
	UpsertAsset(ctx context.Context, h models.Holding) error
}

// Server is the HTTP frontend for the chat service and the portfolio.
type Server struct {
	router *chi.Mux
	server *http.Server
	chat   *chat.Service
	store  assetStore
	logger zerolog.Logger
}

// New creates the server and mounts its routes.
func New(chatService *chat.Service, store assetStore, port int) *Server {
	s := &Server{
		router: chi.NewRouter(),
		chat:   chatService,
		store:  store,
		logger: log.With().Str("component", "http_server").Logger(),
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/api/assets", s.handleListAssets)
	s.router.Post("/api/assets", s.handleCreateAsset)
	s.router.Get("/api/health", s.handleHealth)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	reply := s.chat.ProcessMessage(r.Context(), req.Message)

	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assetType := strings.ToUpper(r.URL.Query().Get("type"))

	holdings, err := s.store.ListAssets(r.Context(), assetType)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list assets")
		http.Error(w, "failed to list assets", http.StatusInternalServerError)
		return
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}

	s.writeJSON(w, http.StatusOK, holdings)
}

type assetRequest struct {
	Symbol       string          `json:"symbol"`
	AssetType    string          `json:"asset_type"`
	Quantity     int             `json:"quantity"`
	AvgBuyPrice  decimal.Decimal `json:"avg_buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	h := models.Holding{
		Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
		AssetType:    strings.ToUpper(strings.TrimSpace(req.AssetType)),
		Quantity:     req.Quantity,
		AvgBuyPrice:  req.AvgBuyPrice,
		CurrentPrice: req.CurrentPrice,
	}

	switch {
	case h.Symbol == "":
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	case h.AssetType != models.AssetTypeStock && h.AssetType != models.AssetTypeCrypto:
		http.Error(w, "asset_type must be STOCK or CRYPTO", http.StatusBadRequest)
		return
	case h.Quantity < 0:
		http.Error(w, "quantity must not be negative", http.StatusBadRequest)
		return
	}

	if err := s.store.UpsertAsset(r.Context(), h); err != nil {
		s.logger.Error().Err(err).Str("symbol", h.Symbol).Msg("Failed to save asset")
		http.Error(w, "failed to save asset", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

// Router returns the mounted routes, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
