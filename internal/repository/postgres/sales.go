// Package postgres implements the store-backed record source against a
// Postgres transactions table.
package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"salesdash/internal/domain"
	"salesdash/internal/query"
	"salesdash/pkg/errors"

	"github.com/jmoiron/sqlx"
)

const selectColumns = `
	transaction_id, date, customer_id, customer_name, phone, gender, age,
	region, customer_type, product_id, product_name, brand, category, tags,
	quantity, unit_price, discount_percent, total_amount, final_amount,
	payment_method, status, delivery_type, store_id, store_location,
	salesperson_id, employee_name`

// SalesRepository is the store-backed record source. The predicate is
// pushed down as a WHERE clause and the full matched set is fetched in one
// query, so stats and page derive from the same records.
type SalesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// Matched returns every record satisfying the predicate.
func (r *SalesRepository) Matched(ctx context.Context, p *query.Predicate) ([]domain.Transaction, error) {
	q := "SELECT " + selectColumns + " FROM transactions"

	where, args := p.Where()
	if where != "" {
		q += " WHERE " + where
		expanded, expandedArgs, err := sqlx.In(q, args...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build transaction query")
		}
		q = r.db.Rebind(expanded)
		args = expandedArgs
	}

	txs := []domain.Transaction{}
	if err := r.db.SelectContext(ctx, &txs, q, args...); err != nil {
		return nil, storeErr(err, "failed to query transactions")
	}
	return txs, nil
}

// Metadata returns the sorted distinct values per filterable dimension
// over the whole table.
func (r *SalesRepository) Metadata(ctx context.Context) (*domain.FilterMetadata, error) {
	meta := &domain.FilterMetadata{}

	columns := []struct {
		name string
		dest *[]string
	}{
		{"region", &meta.Regions},
		{"category", &meta.Categories},
		{"payment_method", &meta.PaymentMethods},
		{"gender", &meta.Genders},
	}

	for _, c := range columns {
		q := fmt.Sprintf(
			"SELECT DISTINCT %s FROM transactions WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s",
			c.name, c.name, c.name, c.name,
		)
		values := []string{}
		if err := r.db.SelectContext(ctx, &values, q); err != nil {
			return nil, storeErr(err, "failed to load distinct "+c.name)
		}
		*c.dest = values
	}

	tags, err := r.distinctTags(ctx)
	if err != nil {
		return nil, err
	}
	meta.Tags = tags

	return meta, nil
}

// distinctTags splits the comma-joined tags column before computing
// distinctness, so each entry is an individual tag.
func (r *SalesRepository) distinctTags(ctx context.Context) ([]string, error) {
	q := `
		SELECT DISTINCT btrim(t.tag)
		FROM transactions, unnest(string_to_array(tags, ',')) AS t(tag)
		WHERE btrim(t.tag) <> ''`

	tags := []string{}
	if err := r.db.SelectContext(ctx, &tags, q); err != nil {
		return nil, storeErr(err, "failed to load distinct tags")
	}
	sort.Strings(tags)
	return tags, nil
}

// Ping reports whether the store is reachable, for readiness checks.
func (r *SalesRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storeErr(err, "store ping failed")
	}
	return nil
}

// storeErr keeps the driver failure in the message while carrying the
// ErrStoreUnavailable sentinel in the chain, so callers can map any store
// failure to one generic server-side error.
func storeErr(err error, msg string) error {
	return fmt.Errorf("%s: %s: %w", msg, strings.TrimSpace(err.Error()), errors.ErrStoreUnavailable)
}
