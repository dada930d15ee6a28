// Package checkout implements the append-only per-user checkout log and
// the admin aggregation across all users.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/FiatTy/Projectjannong/internal/cart"
	"github.com/FiatTy/Projectjannong/internal/docstore"
)

// timestampLayout mirrors an ISO-8601 UTC timestamp with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Record is an immutable snapshot of a completed checkout. Records are
// appended to a per-user log and never rewritten.
type Record struct {
	Timestamp   string      `json:"timestamp"`
	UserEmail   string      `json:"userEmail"`
	Items       []cart.Item `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
}

// CheckoutService defines the checkout log operations.
type CheckoutService interface {
	// Append records a checkout for email with the current timestamp.
	// A corrupted existing log is silently discarded and restarted.
	Append(ctx context.Context, email string, items []cart.Item, totalAmount float64) (*Record, error)

	// List returns the full checkout log for email, or an empty log if
	// none exists. A log that does not parse returns
	// docstore.ErrCorrupted.
	List(ctx context.Context, email string) ([]Record, error)

	// ListAll concatenates every user's log, most recent first.
	// Unparsable logs are skipped with a warning.
	ListAll(ctx context.Context) ([]Record, error)
}

// Service implements CheckoutService on top of a document store.
type Service struct {
	store  docstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a checkout service backed by the given store.
func NewService(store docstore.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With("component", "checkout"),
		now:    time.Now,
	}
}

// Append appends a checkout record to the user's log.
func (s *Service) Append(ctx context.Context, email string, items []cart.Item, totalAmount float64) (*Record, error) {
	key := docstore.SafeKeyKeepDots(email)

	records := make([]Record, 0)
	if err := s.store.Load(ctx, key, &records); err != nil {
		if !errors.Is(err, docstore.ErrCorrupted) {
			return nil, fmt.Errorf("failed to load checkout log for %s: %w", email, err)
		}
		// The existing log is unreadable; restart it rather than block
		// the user's checkout.
		s.logger.WarnContext(ctx, "Discarding corrupted checkout log", "email", email, "error", err)
		records = make([]Record, 0)
	}

	record := Record{
		Timestamp:   s.now().UTC().Format(timestampLayout),
		UserEmail:   email,
		Items:       items,
		TotalAmount: totalAmount,
	}
	records = append(records, record)

	if err := s.store.Save(ctx, key, records); err != nil {
		return nil, fmt.Errorf("failed to save checkout log for %s: %w", email, err)
	}
	return &record, nil
}

// List returns the checkout log for one user.
func (s *Service) List(ctx context.Context, email string) ([]Record, error) {
	records := make([]Record, 0)
	if err := s.store.Load(ctx, docstore.SafeKeyKeepDots(email), &records); err != nil {
		return nil, fmt.Errorf("failed to load checkout log for %s: %w", email, err)
	}
	return records, nil
}

// ListAll scans every stored log and returns the combined records
// sorted by descending timestamp.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout logs: %w", err)
	}

	all := make([]Record, 0)
	for _, key := range keys {
		records := make([]Record, 0)
		if err := s.store.Load(ctx, key, &records); err != nil {
			s.logger.WarnContext(ctx, "Skipping unreadable checkout log", "key", key, "error", err)
			continue
		}
		all = append(all, records...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return parseTimestamp(all[i].Timestamp).After(parseTimestamp(all[j].Timestamp))
	})
	return all, nil
}

// parseTimestamp is lenient: records with unreadable timestamps sort
// last instead of failing the aggregation.
func parseTimestamp(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}
