package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zoracast/zoracast/internal/persistence"
)

type tradesRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewTradesRepo creates a PostgreSQL trades repository.
func NewTradesRepo(db *sqlx.DB, timeout time.Duration) persistence.TradesRepo {
	return &tradesRepo{db: db, timeout: timeout}
}

func (r *tradesRepo) Insert(ctx context.Context, rec persistence.TradeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO trades (id, user_addr, coin_addr, amount_eth, is_buy, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.User, rec.Address, rec.AmountEth, rec.IsBuy, rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}
