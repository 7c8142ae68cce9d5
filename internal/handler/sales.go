// Package handler provides the HTTP handlers for the sales query service.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"salesdash/internal/domain"
	"salesdash/internal/query"
	"salesdash/pkg/logger"
)

const metaCacheKey = "sales:meta"

// MetadataCache caches the filter metadata payload. Satisfied by
// pkg/cache.RedisCache; may be left nil to disable caching.
type MetadataCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// SalesHandler serves the transaction query and filter metadata endpoints.
type SalesHandler struct {
	engine  *query.Engine
	meta    MetadataCache
	metaTTL time.Duration
	logger  logger.Logger
}

func NewSalesHandler(engine *query.Engine, meta MetadataCache, metaTTL time.Duration, log logger.Logger) *SalesHandler {
	return &SalesHandler{engine: engine, meta: meta, metaTTL: metaTTL, logger: log}
}

// GetSales returns one page of filtered, sorted transactions together with
// aggregate stats over the full filtered set.
func (h *SalesHandler) GetSales(w http.ResponseWriter, r *http.Request) {
	filter, sortSpec, page := query.ParseParams(r.URL.Query())

	result, err := h.engine.Query(r.Context(), filter, sortSpec, page)
	if err != nil {
		h.logger.Error("Failed to query transactions", map[string]interface{}{"error": err.Error()})
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetMetadata returns the distinct values per filterable dimension, for
// populating filter controls.
func (h *SalesHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	if h.meta != nil {
		var cached domain.FilterMetadata
		if err := h.meta.Get(r.Context(), metaCacheKey, &cached); err == nil {
			h.respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	meta, err := h.engine.Metadata(r.Context())
	if err != nil {
		h.logger.Error("Failed to load filter metadata", map[string]interface{}{"error": err.Error()})
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch metadata")
		return
	}

	if h.meta != nil {
		if err := h.meta.Set(r.Context(), metaCacheKey, meta, h.metaTTL); err != nil {
			h.logger.Warn("Failed to cache filter metadata", map[string]interface{}{"error": err.Error()})
		}
	}

	h.respondJSON(w, http.StatusOK, meta)
}

func (h *SalesHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *SalesHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
