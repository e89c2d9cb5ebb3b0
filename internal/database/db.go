package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/Alias1177/Advisor/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// The database may still be starting up; retry the first ping with
	// exponential backoff before giving up.
	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(db.Ping, strategy); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user_assets (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			asset_type TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			avg_buy_price NUMERIC(20, 8) NOT NULL DEFAULT 0,
			current_price NUMERIC(20, 8) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (symbol, asset_type)
		)
	`)

	return err
}

// ListAssets returns holdings filtered by asset type; an empty type returns
// everything. Ordering is by symbol for stable output.
func (db *DB) ListAssets(ctx context.Context, assetType string) ([]models.Holding, error) {
	query := `
		SELECT symbol, asset_type, quantity, avg_buy_price, current_price
		FROM user_assets
	`
	var args []any
	if assetType != "" {
		query += ` WHERE asset_type = $1`
		args = append(args, assetType)
	}
	query += ` ORDER BY symbol`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.Symbol, &h.AssetType, &h.Quantity, &h.AvgBuyPrice, &h.CurrentPrice); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	return holdings, rows.Err()
}

// UpsertAsset inserts a holding or replaces the stored position for its
// symbol and asset type.
func (db *DB) UpsertAsset(ctx context.Context, h models.Holding) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO user_assets (symbol, asset_type, quantity, avg_buy_price, current_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (symbol, asset_type)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			avg_buy_price = EXCLUDED.avg_buy_price,
			current_price = EXCLUDED.current_price
	`, h.Symbol, h.AssetType, h.Quantity, h.AvgBuyPrice, h.CurrentPrice)

	return err
}

// UpdateCurrentPrice stores the latest quote for a holding.
func (db *DB) UpdateCurrentPrice(ctx context.Context, symbol, assetType string, price decimal.Decimal) error {
	_, err := db.ExecContext(ctx, `
		UPDATE user_assets
		SET current_price = $3
		WHERE symbol = $1 AND asset_type = $2
	`, symbol, assetType, price)

	return err
}
