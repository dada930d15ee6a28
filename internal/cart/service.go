// Package cart implements per-user shopping cart storage. Each user
// owns one JSON array document keyed by their sanitized email.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/FiatTy/Projectjannong/internal/docstore"
)

// Item is one entry in a user's cart. Entries are unique per ID; adding
// an existing ID increments its quantity instead of appending.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// CartService defines the operations on a user's cart.
type CartService interface {
	// Get returns the user's cart, or an empty cart if none exists.
	// A cart document that exists but does not parse returns
	// docstore.ErrCorrupted.
	Get(ctx context.Context, email string) ([]Item, error)

	// Add upserts item into the cart: an existing entry with the same
	// ID has its quantity incremented by item.Qty, otherwise the item
	// is appended. Returns the full updated cart.
	Add(ctx context.Context, email string, item Item) ([]Item, error)

	// UpdateQuantity locates an item by id when given, else by name
	// (first match in array order). newQty > 0 sets the entry's
	// quantity; a miss returns ErrItemNotFound. newQty == 0 removes
	// every entry matching by id or by name; a miss is not an error
	// and the returned bool reports whether anything was removed.
	UpdateQuantity(ctx context.Context, email, id, name string, newQty int) ([]Item, bool, error)

	// Clear overwrites the cart with an empty array. The document is
	// not deleted.
	Clear(ctx context.Context, email string) error
}

// Service implements CartService on top of a document store.
type Service struct {
	store docstore.Store
}

// NewService creates a cart service backed by the given store.
func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// Get returns the user's cart.
func (s *Service) Get(ctx context.Context, email string) ([]Item, error) {
	items := make([]Item, 0)
	if err := s.store.Load(ctx, docstore.SafeKey(email), &items); err != nil {
		return nil, fmt.Errorf("failed to load cart for %s: %w", email, err)
	}
	return items, nil
}

// Add upserts item into the user's cart and returns the updated cart.
// A corrupted existing document restarts the cart from empty rather
// than failing the write; only the read path surfaces corruption.
func (s *Service) Add(ctx context.Context, email string, item Item) ([]Item, error) {
	key := docstore.SafeKey(email)
	items, err := s.loadTolerant(ctx, key)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Qty += item.Qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	if err := s.store.Save(ctx, key, items); err != nil {
		return nil, fmt.Errorf("failed to save cart for %s: %w", email, err)
	}
	return items, nil
}

// UpdateQuantity sets or removes an item's quantity. See CartService.
func (s *Service) UpdateQuantity(ctx context.Context, email, id, name string, newQty int) ([]Item, bool, error) {
	key := docstore.SafeKey(email)
	items, err := s.loadTolerant(ctx, key)
	if err != nil {
		return nil, false, err
	}

	if newQty == 0 {
		// Remove everything matching by id or by name. With both
		// selectors given this can drop entries matched by either.
		kept := make([]Item, 0, len(items))
		removed := false
		for _, it := range items {
			if (id != "" && it.ID == id) || (name != "" && it.Name == name) {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		if err := s.store.Save(ctx, key, kept); err != nil {
			return nil, false, fmt.Errorf("failed to save cart for %s: %w", email, err)
		}
		return kept, removed, nil
	}

	for i := range items {
		if (id != "" && items[i].ID == id) || (id == "" && name != "" && items[i].Name == name) {
			items[i].Qty = newQty
			if err := s.store.Save(ctx, key, items); err != nil {
				return nil, false, fmt.Errorf("failed to save cart for %s: %w", email, err)
			}
			return items, true, nil
		}
	}
	return nil, false, fmt.Errorf("item id=%q name=%q: %w", id, name, ErrItemNotFound)
}

// Clear resets the user's cart to an empty array.
func (s *Service) Clear(ctx context.Context, email string) error {
	if err := s.store.Save(ctx, docstore.SafeKey(email), []Item{}); err != nil {
		return fmt.Errorf("failed to clear cart for %s: %w", email, err)
	}
	return nil
}

// loadTolerant reads the cart at key, treating a corrupted document as
// an empty cart.
func (s *Service) loadTolerant(ctx context.Context, key string) ([]Item, error) {
	items := make([]Item, 0)
	if err := s.store.Load(ctx, key, &items); err != nil {
		if !errors.Is(err, docstore.ErrCorrupted) {
			return nil, fmt.Errorf("failed to load cart %s: %w", key, err)
		}
		items = make([]Item, 0)
	}
	return items, nil
}
