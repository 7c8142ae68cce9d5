package query

import (
	"context"

	"salesdash/internal/domain"
	"salesdash/pkg/logger"
)

// RecordSource supplies the records matching a predicate. Order is not
// guaranteed at this stage; the engine sorts. The snapshot source scans an
// in-memory copy, the store-backed source pushes the predicate down as a
// WHERE clause. Both return the full matched set in one call so the stats
// and the page are derived from the same records.
type RecordSource interface {
	Matched(ctx context.Context, p *Predicate) ([]domain.Transaction, error)
	Metadata(ctx context.Context) (*domain.FilterMetadata, error)
}

// Engine turns a filter/sort/page specification into one page of records
// plus aggregate stats over the full matched set.
type Engine struct {
	source RecordSource
	logger logger.Logger
}

func NewEngine(source RecordSource, log logger.Logger) *Engine {
	return &Engine{source: source, logger: log}
}

// Query evaluates the filter once, aggregates over the matched set, then
// sorts and slices the same set into the requested page.
func (e *Engine) Query(ctx context.Context, filter domain.FilterSpec, sort domain.SortSpec, page domain.PageRequest) (*domain.QueryResult, error) {
	page = clampPage(page)

	predicate := BuildPredicate(filter)
	matched, err := e.source.Matched(ctx, predicate)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(matched)
	SortRecords(matched, sort)
	data, pagination := Paginate(matched, page)

	e.logger.Debug("query evaluated", map[string]interface{}{
		"matched": pagination.Total,
		"page":    pagination.Page,
		"limit":   pagination.Limit,
	})

	return &domain.QueryResult{
		Data:       data,
		Pagination: pagination,
		Stats:      stats,
	}, nil
}

// Metadata returns the distinct values per filterable dimension over the
// full record population, independent of any filter.
func (e *Engine) Metadata(ctx context.Context) (*domain.FilterMetadata, error) {
	return e.source.Metadata(ctx)
}

func clampPage(p domain.PageRequest) domain.PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}
