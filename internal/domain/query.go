package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilterSpec is one request's normalized filter intent. Zero-valued fields
// do not constrain: a FilterSpec with everything absent matches every
// record.
type FilterSpec struct {
	Search string

	Regions        []string
	Genders        []string
	Categories     []string
	PaymentMethods []string
	Tags           []string

	MinAge *int
	MaxAge *int

	StartDate *time.Time
	EndDate   *time.Time
}

// Empty reports whether the spec constrains nothing.
func (f FilterSpec) Empty() bool {
	return f.Search == "" &&
		len(f.Regions) == 0 && len(f.Genders) == 0 && len(f.Categories) == 0 &&
		len(f.PaymentMethods) == 0 && len(f.Tags) == 0 &&
		f.MinAge == nil && f.MaxAge == nil &&
		f.StartDate == nil && f.EndDate == nil
}

// SortKey identifies a sortable column.
type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByQuantity     SortKey = "quantity"
	SortByCustomerName SortKey = "customer_name"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is the requested ordering. The zero value means the default
// ordering, date descending.
type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSort is applied when no (or an unknown) sort is requested.
var DefaultSort = SortSpec{Key: SortByDate, Direction: SortDesc}

// PageRequest selects one page of the sorted matched set.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset is the index of the first record on the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// StatusStat is the count and monetary sum for one tracked status.
type StatusStat struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Stats are the aggregates over the full matched set, before pagination.
type Stats struct {
	TotalTransactions int                              `json:"totalTransactions"`
	TotalAmount       decimal.Decimal                  `json:"totalAmount"`
	ByStatus          map[TransactionStatus]StatusStat `json:"byStatus"`
}

// Pagination describes the returned page relative to the matched set.
type Pagination struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// QueryResult is one page of records plus pagination metadata and the
// aggregate stats over the full matched set.
type QueryResult struct {
	Data       []Transaction `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Stats      Stats         `json:"stats"`
}

// FilterMetadata lists the distinct values available per filterable
// dimension, for populating filter UIs.
type FilterMetadata struct {
	Regions        []string `json:"regions"`
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"paymentMethods"`
	Genders        []string `json:"genders"`
	Tags           []string `json:"tags"`
}
