package query

import (
	"sort"

	"salesdash/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortRecords orders records in place for the requested key and direction.
// Unknown keys fall back to the default ordering, date descending. The sort
// is stable: records with equal keys keep their relative source order.
func SortRecords(records []domain.Transaction, spec domain.SortSpec) {
	spec = normalizeSort(spec)

	var less func(a, b *domain.Transaction) bool
	switch spec.Key {
	case domain.SortByQuantity:
		less = func(a, b *domain.Transaction) bool { return a.Quantity < b.Quantity }
	case domain.SortByCustomerName:
		// Collators are not safe for concurrent use, so build one per sort.
		c := collate.New(language.English)
		less = func(a, b *domain.Transaction) bool {
			return c.CompareString(a.CustomerName, b.CustomerName) < 0
		}
	default:
		less = func(a, b *domain.Transaction) bool { return a.Date.Before(b.Date) }
	}

	asc := spec.Direction == domain.SortAsc
	sort.SliceStable(records, func(i, j int) bool {
		if asc {
			return less(&records[i], &records[j])
		}
		return less(&records[j], &records[i])
	})
}

func normalizeSort(spec domain.SortSpec) domain.SortSpec {
	switch spec.Key {
	case domain.SortByDate, domain.SortByQuantity, domain.SortByCustomerName:
	default:
		return domain.DefaultSort
	}
	if spec.Direction != domain.SortAsc && spec.Direction != domain.SortDesc {
		spec.Direction = domain.SortDesc
	}
	return spec
}
