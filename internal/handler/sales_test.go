package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salesdash/internal/domain"
	"salesdash/internal/query"
	"salesdash/internal/source"
	"salesdash/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(records []domain.Transaction) *mux.Router {
	snap := source.NewSnapshot()
	snap.Replace(records)
	engine := query.NewEngine(snap, logger.NewNop())
	h := NewSalesHandler(engine, nil, 0, logger.NewNop())

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sales", h.GetSales).Methods("GET")
	api.HandleFunc("/sales/meta", h.GetMetadata).Methods("GET")
	return r
}

func dashboardRecords() []domain.Transaction {
	return []domain.Transaction{
		{
			TransactionID: "TX-1",
			Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Anita Sharma",
			Region:        "North",
			Age:           30,
			Status:        domain.StatusCompleted,
			FinalAmount:   decimal.NewFromInt(100),
			Category:      "Grocery",
			PaymentMethod: "UPI",
			Gender:        domain.GenderFemale,
			Tags:          "organic",
		},
		{
			TransactionID: "TX-2",
			Date:          time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Bob Singh",
			Region:        "South",
			Age:           40,
			Status:        domain.StatusPending,
			FinalAmount:   decimal.NewFromInt(50),
			Category:      "Electronics",
			PaymentMethod: "Card",
			Gender:        domain.GenderMale,
			Tags:          "bulk",
		},
	}
}

func TestGetSalesResponseShape(t *testing.T) {
	router := newTestRouter(dashboardRecords())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?region=North", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Data       []map[string]interface{} `json:"data"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
			Page       int `json:"page"`
			Limit      int `json:"limit"`
		} `json:"pagination"`
		Stats struct {
			TotalTransactions int                    `json:"totalTransactions"`
			TotalAmount       string                 `json:"totalAmount"`
			ByStatus          map[string]interface{} `json:"byStatus"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Data, 1)
	assert.Equal(t, "TX-1", body.Data[0]["transactionId"])
	assert.Equal(t, 1, body.Pagination.Total)
	assert.Equal(t, 1, body.Pagination.TotalPages)
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.Equal(t, 1, body.Stats.TotalTransactions)
	assert.Equal(t, "100", body.Stats.TotalAmount)
	assert.Contains(t, body.Stats.ByStatus, "Completed")
	assert.Contains(t, body.Stats.ByStatus, "Pending")
}

func TestGetSalesDefaultsOnMalformedParams(t *testing.T) {
	router := newTestRouter(dashboardRecords())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?page=banana&limit=-1&minAge=xyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "malformed params degrade, never reject")

	var body struct {
		Pagination domain.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Pagination.Page)
	assert.Equal(t, 10, body.Pagination.Limit)
	assert.Equal(t, 2, body.Pagination.Total)
}

func TestGetMetadataResponseShape(t *testing.T) {
	router := newTestRouter(dashboardRecords())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/meta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta domain.FilterMetadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, []string{"North", "South"}, meta.Regions)
	assert.Equal(t, []string{"Electronics", "Grocery"}, meta.Categories)
	assert.Equal(t, []string{"Card", "UPI"}, meta.PaymentMethods)
	assert.Equal(t, []string{"Female", "Male"}, meta.Genders)
	assert.Equal(t, []string{"bulk", "organic"}, meta.Tags)
}

type failingSource struct{}

func (failingSource) Matched(ctx context.Context, p *query.Predicate) ([]domain.Transaction, error) {
	return nil, assert.AnError
}

func (failingSource) Metadata(ctx context.Context) (*domain.FilterMetadata, error) {
	return nil, assert.AnError
}

func TestGetSalesStoreFailureIsGeneric500(t *testing.T) {
	engine := query.NewEngine(failingSource{}, logger.NewNop())
	h := NewSalesHandler(engine, nil, 0, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	rec := httptest.NewRecorder()
	h.GetSales(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch transactions", body["error"], "internal detail is not leaked")
}

type countingCache struct {
	stored map[string][]byte
	hits   int
	sets   int
}

func newCountingCache() *countingCache {
	return &countingCache{stored: map[string][]byte{}}
}

func (c *countingCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.stored[key]
	if !ok {
		return assert.AnError
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *countingCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.stored[key] = data
	c.sets++
	return nil
}

func TestGetMetadataUsesCache(t *testing.T) {
	snap := source.NewSnapshot()
	snap.Replace(dashboardRecords())
	engine := query.NewEngine(snap, logger.NewNop())
	cache := newCountingCache()
	h := NewSalesHandler(engine, cache, time.Minute, logger.NewNop())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/meta", nil)
		rec := httptest.NewRecorder()
		h.GetMetadata(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, cache.sets, "first request populates the cache")
	assert.Equal(t, 1, cache.hits, "second request is served from it")
}
