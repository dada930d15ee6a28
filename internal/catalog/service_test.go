package catalog

import (
	"context"
	"testing"

	"github.com/FiatTy/Projectjannong/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, store docstore.Store, products []Product) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), catalogKey, products))
}

func Test_CatalogService_List_Empty(t *testing.T) {
	// given
	service := NewService(docstore.NewMemStore())
	// when
	products, err := service.List(context.Background())
	// then
	require.NoError(t, err)
	assert.Equal(t, []Product{}, products)
}

func Test_CatalogService_List_CorruptedReadsAsEmpty(t *testing.T) {
	// given
	store := docstore.NewMemStore()
	store.Corrupt(catalogKey)
	service := NewService(store)
	// when
	products, err := service.List(context.Background())
	// then
	require.NoError(t, err)
	assert.Empty(t, products)
}

func Test_CatalogService_Get(t *testing.T) {
	// given
	store := docstore.NewMemStore()
	seedCatalog(t, store, []Product{{"id": "p1", "name": "Lamp"}})
	service := NewService(store)

	t.Run("found", func(t *testing.T) {
		p, err := service.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "Lamp", p["name"])
	})
	t.Run("not found", func(t *testing.T) {
		_, err := service.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func Test_CatalogService_Create(t *testing.T) {
	testCases := []struct {
		name        string
		product     Product
		expectError error
	}{
		{
			name:    "valid product",
			product: Product{"id": "p1", "name": "Lamp", "price": 19.99, "type": "light"},
		},
		{
			name:    "price zero is allowed",
			product: Product{"id": "p1", "name": "Freebie", "price": 0.0, "type": "promo"},
		},
		{
			name:        "missing id",
			product:     Product{"name": "Lamp", "price": 19.99, "type": "light"},
			expectError: ErrMissingFields,
		},
		{
			name:        "missing price",
			product:     Product{"id": "p1", "name": "Lamp", "type": "light"},
			expectError: ErrMissingFields,
		},
		{
			name:        "missing type",
			product:     Product{"id": "p1", "name": "Lamp", "price": 19.99},
			expectError: ErrMissingFields,
		},
		{
			name:        "unparsable price",
			product:     Product{"id": "p1", "name": "Lamp", "price": "cheap", "type": "light"},
			expectError: ErrInvalidPrice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(docstore.NewMemStore())
			// when
			created, err := service.Create(context.Background(), tc.product)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.product.ID(), created.ID())
		})
	}
}

func Test_CatalogService_Create_DuplicateID(t *testing.T) {
	// given
	store := docstore.NewMemStore()
	seedCatalog(t, store, []Product{{"id": "p1", "name": "Lamp"}})
	service := NewService(store)
	// when
	_, err := service.Create(context.Background(), Product{"id": "p1", "name": "Other", "price": 1.0, "type": "misc"})
	// then
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func Test_CatalogService_Create_NormalizesImgAndPrice(t *testing.T) {
	// given
	service := NewService(docstore.NewMemStore())
	// when
	created, err := service.Create(context.Background(), Product{
		"id":    "p1",
		"name":  "Lamp",
		"price": "19.99",
		"type":  "light",
		"img":   "a.png, b.png, ",
	})
	// then
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png"}, created["img"])
	assert.InDelta(t, 19.99, created["price"].(float64), 0.001)

	// and the normalized shape survives a reload
	stored, err := service.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []any{"a.png", "b.png"}, stored["img"])
}

func Test_CatalogService_Create_AbsentImgBecomesEmptySlice(t *testing.T) {
	// given
	service := NewService(docstore.NewMemStore())
	// when
	created, err := service.Create(context.Background(), Product{"id": "p1", "name": "Lamp", "price": 5.0, "type": "light"})
	// then
	require.NoError(t, err)
	assert.Equal(t, []string{}, created["img"])
}

func Test_CatalogService_Update(t *testing.T) {
	// given
	store := docstore.NewMemStore()
	seedCatalog(t, store, []Product{{"id": "p1", "name": "Lamp", "price": 19.99, "type": "light", "stock": 3.0}})
	service := NewService(store)
	// when: payload tries to change the id
	updated, err := service.Update(context.Background(), "p1", Product{"id": "hijacked", "name": "Bright Lamp"})
	// then: fields merge, id stays
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID())
	assert.Equal(t, "Bright Lamp", updated["name"])
	assert.Equal(t, 3.0, updated["stock"])
}

func Test_CatalogService_Update_NotFound(t *testing.T) {
	// given
	service := NewService(docstore.NewMemStore())
	// when
	_, err := service.Update(context.Background(), "missing", Product{"name": "x"})
	// then
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func Test_CatalogService_Update_CorruptedCatalogFails(t *testing.T) {
	// given: mutations must not clobber an unreadable catalog
	store := docstore.NewMemStore()
	store.Corrupt(catalogKey)
	service := NewService(store)
	// when
	_, err := service.Update(context.Background(), "p1", Product{"name": "x"})
	// then
	assert.ErrorIs(t, err, docstore.ErrCorrupted)
}

func Test_CatalogService_Delete(t *testing.T) {
	// given
	store := docstore.NewMemStore()
	seedCatalog(t, store, []Product{{"id": "p1"}, {"id": "p2"}, {"id": "p1"}})
	service := NewService(store)
	// when: every entry with the id goes
	err := service.Delete(context.Background(), "p1")
	// then
	require.NoError(t, err)
	products, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID())
}

func Test_CatalogService_Delete_NotFound(t *testing.T) {
	// given
	store := docstore.NewMemStore()
	seedCatalog(t, store, []Product{{"id": "p1"}})
	service := NewService(store)
	// when
	err := service.Delete(context.Background(), "missing")
	// then
	assert.ErrorIs(t, err, ErrProductNotFound)
	products, listErr := service.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, products, 1)
}
