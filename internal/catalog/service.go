// Package catalog implements the shared product catalog: one JSON array
// document holding every product.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/FiatTy/Projectjannong/internal/docstore"
)

// catalogKey names the single shared catalog document (product.json).
const catalogKey = "product"

// Product is a catalog entry. Beyond the required id, name, price and
// type fields, products carry arbitrary extra fields that must survive
// round-trips and shallow-merge updates, so the document stays dynamic.
type Product map[string]any

// ID returns the product's id field, or "" when absent or not a string.
func (p Product) ID() string {
	id, _ := p["id"].(string)
	return id
}

// CatalogService defines the operations on the product catalog.
type CatalogService interface {
	// List returns the full catalog. An unreadable catalog document
	// reads as empty.
	List(ctx context.Context) ([]Product, error)

	// Get returns the product with the given id, or ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)

	// Create validates, normalizes and appends a new product.
	// Missing required fields return ErrMissingFields, an id already in
	// the catalog ErrDuplicateID.
	Create(ctx context.Context, p Product) (Product, error)

	// Update shallow-merges partial over the stored product with the
	// given id, keeping the original id regardless of the payload.
	Update(ctx context.Context, id string, partial Product) (Product, error)

	// Delete removes every product with the given id; none matching
	// returns ErrProductNotFound.
	Delete(ctx context.Context, id string) error
}

// Service implements CatalogService on top of a document store.
type Service struct {
	store docstore.Store
}

// NewService creates a catalog service backed by the given store.
func NewService(store docstore.Store) *Service {
	return &Service{store: store}
}

// List returns all products. Corruption is tolerated on the read path;
// the write paths surface it instead.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products := make([]Product, 0)
	if err := s.store.Load(ctx, catalogKey, &products); err != nil {
		if errors.Is(err, docstore.ErrCorrupted) {
			return make([]Product, 0), nil
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return products, nil
}

// Get returns one product by id via a linear scan.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
}

// Create appends a new product to the catalog.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if err := normalize(p); err != nil {
		return nil, err
	}
	if !hasString(p, "id") || !hasString(p, "name") || !hasString(p, "type") {
		return nil, ErrMissingFields
	}
	// Price must be present; zero is a legal price, so this is a
	// defined check rather than a truthiness check.
	if _, ok := p["price"]; !ok {
		return nil, ErrMissingFields
	}

	products, err := s.loadStrict(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range products {
		if existing.ID() == p.ID() {
			return nil, fmt.Errorf("product %s: %w", p.ID(), ErrDuplicateID)
		}
	}

	products = append(products, p)
	if err := s.store.Save(ctx, catalogKey, products); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}
	return p, nil
}

// Update merges partial over the stored product, preserving its id.
func (s *Service) Update(ctx context.Context, id string, partial Product) (Product, error) {
	if err := normalize(partial); err != nil {
		return nil, err
	}

	products, err := s.loadStrict(ctx)
	if err != nil {
		return nil, err
	}
	for i, existing := range products {
		if existing.ID() != id {
			continue
		}
		for k, v := range partial {
			existing[k] = v
		}
		// The id is not updatable; force the original back.
		existing["id"] = id
		products[i] = existing
		if err := s.store.Save(ctx, catalogKey, products); err != nil {
			return nil, fmt.Errorf("failed to save catalog: %w", err)
		}
		return existing, nil
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
}

// Delete removes every product with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	products, err := s.loadStrict(ctx)
	if err != nil {
		return err
	}
	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID() == id {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == len(products) {
		return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	}
	if err := s.store.Save(ctx, catalogKey, kept); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// loadStrict reads the catalog for a read-modify-write cycle. Unlike
// List it surfaces corruption, so a mutation never clobbers a document
// that still holds data.
func (s *Service) loadStrict(ctx context.Context) ([]Product, error) {
	products := make([]Product, 0)
	if err := s.store.Load(ctx, catalogKey, &products); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return products, nil
}

// normalize coerces the img and price fields into their canonical
// shapes: img becomes a slice of trimmed non-empty strings, price a
// float64.
func normalize(p Product) error {
	switch img := p["img"].(type) {
	case string:
		parts := strings.Split(img, ",")
		urls := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
		p["img"] = urls
	case nil:
		p["img"] = []string{}
	}

	if price, ok := p["price"].(string); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", price, ErrInvalidPrice)
		}
		p["price"] = parsed
	}
	return nil
}

func hasString(p Product, key string) bool {
	s, ok := p[key].(string)
	return ok && s != ""
}
