package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FiatTy/Projectjannong/internal/cart"
	"github.com/FiatTy/Projectjannong/internal/checkout"
	"github.com/FiatTy/Projectjannong/internal/docstore"
	"github.com/FiatTy/Projectjannong/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

const testAdminKey = "test-admin-key"

// mockCheckoutService is a mock implementation of the CheckoutService interface
type mockCheckoutService struct {
	record   *checkout.Record
	records  []checkout.Record
	appended int
	error    error
}

func (m *mockCheckoutService) Append(_ context.Context, _ string, _ []cart.Item, _ float64) (*checkout.Record, error) {
	if m.error != nil {
		return nil, m.error
	}
	m.appended++
	return m.record, nil
}

func (m *mockCheckoutService) List(_ context.Context, _ string) ([]checkout.Record, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.records, nil
}

func (m *mockCheckoutService) ListAll(_ context.Context) ([]checkout.Record, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.records, nil
}

func newTestRouter(service checkout.CheckoutService) *chi.Mux {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(service, logger).RegisterRoutes(mux, web.AdminOnly(testAdminKey, logger))
	return mux
}

func Test_CheckoutAPI_Create(t *testing.T) {
	record := &checkout.Record{Timestamp: "2025-06-01T12:00:00.000Z", UserEmail: "user@example.com"}
	testCases := []struct {
		name         string
		body         string
		mockService  mockCheckoutService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - checkout recorded",
			body:         `{"email":"user@example.com","cart":[{"id":"p1","name":"Lamp","price":19.99,"qty":2}],"totalAmount":39.98}`,
			mockService:  mockCheckoutService{record: record},
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"message":"Checkout data saved successfully."}`,
		},
		{
			name:         "Success - empty cart array is acceptable",
			body:         `{"email":"user@example.com","cart":[],"totalAmount":0}`,
			mockService:  mockCheckoutService{record: record},
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"message":"Checkout data saved successfully."}`,
		},
		{
			name:         "Error - missing email",
			body:         `{"cart":[],"totalAmount":5}`,
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Missing required checkout data (email, cart, or totalAmount)."}`,
		},
		{
			name:         "Error - missing totalAmount",
			body:         `{"email":"user@example.com","cart":[]}`,
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Missing required checkout data (email, cart, or totalAmount)."}`,
		},
		{
			name:         "Error - cart is not an array",
			body:         `{"email":"user@example.com","cart":{"id":"p1"},"totalAmount":5}`,
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Missing required checkout data (email, cart, or totalAmount)."}`,
		},
		{
			name:         "Error - cart is null",
			body:         `{"email":"user@example.com","cart":null,"totalAmount":5}`,
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Missing required checkout data (email, cart, or totalAmount)."}`,
		},
		{
			name:         "Error - storage failure",
			body:         `{"email":"user@example.com","cart":[],"totalAmount":5}`,
			mockService:  mockCheckoutService{error: docstore.ErrWriteFailed},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to save checkout data."}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			if tc.expectedCode != http.StatusOK {
				assert.Zero(t, tc.mockService.appended, "rejected checkout must not append a record")
			}
		})
	}
}

func Test_CheckoutAPI_List(t *testing.T) {
	records := []checkout.Record{{Timestamp: "2025-06-01T12:00:00.000Z", UserEmail: "user@example.com", TotalAmount: 10}}
	testCases := []struct {
		name         string
		target       string
		adminKey     string
		mockService  mockCheckoutService
		expectedCode int
	}{
		{
			name:         "Success - log returned",
			target:       "/checkout/checkouts?email=user@example.com",
			adminKey:     testAdminKey,
			mockService:  mockCheckoutService{records: records},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Success - empty log",
			target:       "/checkout/checkouts?email=nobody@example.com",
			adminKey:     testAdminKey,
			mockService:  mockCheckoutService{records: []checkout.Record{}},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - missing email parameter",
			target:       "/checkout/checkouts",
			adminKey:     testAdminKey,
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - wrong admin key",
			target:       "/checkout/checkouts?email=user@example.com",
			adminKey:     "wrong",
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Error - missing admin key",
			target:       "/checkout/checkouts?email=user@example.com",
			mockService:  mockCheckoutService{},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Error - corrupted log",
			target:       "/checkout/checkouts?email=user@example.com",
			adminKey:     testAdminKey,
			mockService:  mockCheckoutService{error: docstore.ErrCorrupted},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.adminKey != "" {
				req.Header.Set(web.AdminKeyHeader, tc.adminKey)
			}
			rr := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}

func Test_CheckoutAPI_ListAll(t *testing.T) {
	t.Run("Success - aggregated records", func(t *testing.T) {
		// given
		records := []checkout.Record{
			{Timestamp: "2025-06-01T14:00:00.000Z", UserEmail: "bob@example.com"},
			{Timestamp: "2025-06-01T12:00:00.000Z", UserEmail: "alice@example.com"},
		}
		mux := newTestRouter(&mockCheckoutService{records: records})
		req := httptest.NewRequest(http.MethodGet, "/checkout/all-checkouts", nil)
		req.Header.Set(web.AdminKeyHeader, testAdminKey)
		rr := httptest.NewRecorder()
		// when
		mux.ServeHTTP(rr, req)
		// then
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "bob@example.com")
		assert.Contains(t, rr.Body.String(), "alice@example.com")
	})

	t.Run("Error - gate rejects without key", func(t *testing.T) {
		// given
		service := &mockCheckoutService{}
		mux := newTestRouter(service)
		req := httptest.NewRequest(http.MethodGet, "/checkout/all-checkouts", nil)
		rr := httptest.NewRecorder()
		// when
		mux.ServeHTTP(rr, req)
		// then
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"error":"Access Denied: Admin privileges required. Invalid Admin Key."}`, rr.Body.String())
	})
}
