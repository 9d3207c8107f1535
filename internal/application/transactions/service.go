package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trykey-dashboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "transactions:"

// ErrFetchFailed is the terminal error for the ledger section.
var ErrFetchFailed = errors.New("Error fetching transactions")

// TransactionFetcher abstracts the platform client.
type TransactionFetcher interface {
	ListTransactions(ctx context.Context, assetNumber string) ([]domain.Transaction, error)
}

// Service serves the read-only payment ledger for an asset. The only local
// mutation is cache invalidation after a successful payment initiation.
type Service struct {
	Client TransactionFetcher
	Rdb    *redis.Client
	TTL    time.Duration
}

// Row is a ledger entry tagged with its display color.
type Row struct {
	domain.Transaction
	Color string `json:"color"`
}

// StatusColor maps a payment status to the row tag: completed renders as
// success, pending as warning, anything else as failure.
func StatusColor(status string) string {
	switch status {
	case domain.PaymentStatusCompleted:
		return "success"
	case domain.PaymentStatusPending:
		return "warning"
	default:
		return "failure"
	}
}

// List fetches the ledger (through the cache) and tags each row.
func (s *Service) List(ctx context.Context, assetNumber string) ([]Row, error) {
	txs, err := s.fetch(ctx, assetNumber)
	if err != nil {
		return nil, ErrFetchFailed
	}
	rows := make([]Row, len(txs))
	for i, tx := range txs {
		rows[i] = Row{Transaction: tx, Color: StatusColor(tx.PaymentStatus)}
	}
	return rows, nil
}

// Invalidate drops the cached ledger so the next read refetches. Called once
// per successful payment initiation.
func (s *Service) Invalidate(ctx context.Context, assetNumber string) error {
	if s.Rdb == nil {
		return nil
	}
	return s.Rdb.Del(ctx, cachePrefix+assetNumber).Err()
}

func (s *Service) fetch(ctx context.Context, assetNumber string) ([]domain.Transaction, error) {
	key := cachePrefix + assetNumber
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, key).Bytes(); err == nil {
			var cached []domain.Transaction
			if json.Unmarshal(b, &cached) == nil {
				return cached, nil
			}
		}
	}

	txs, err := s.Client.ListTransactions(ctx, assetNumber)
	if err != nil {
		return nil, err
	}
	if s.Rdb != nil {
		if b, err := json.Marshal(txs); err == nil {
			s.Rdb.Set(ctx, key, b, s.ttl())
		}
	}
	return txs, nil
}

func (s *Service) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 30 * time.Second
}
