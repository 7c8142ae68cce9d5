package query

import (
	"salesdash/internal/domain"

	"github.com/shopspring/decimal"
)

// Aggregate computes the stats over the full matched set, before any
// pagination. Every tracked status appears in ByStatus, zero-valued when no
// matched record carries it. Records with an untracked status count toward
// the totals but are not broken out.
func Aggregate(records []domain.Transaction) domain.Stats {
	stats := domain.Stats{
		TotalTransactions: len(records),
		TotalAmount:       decimal.Zero,
		ByStatus:          make(map[domain.TransactionStatus]domain.StatusStat, len(domain.TrackedStatuses)),
	}
	for _, s := range domain.TrackedStatuses {
		stats.ByStatus[s] = domain.StatusStat{Amount: decimal.Zero}
	}

	for i := range records {
		amount := records[i].FinalAmount
		stats.TotalAmount = stats.TotalAmount.Add(amount)

		status := records[i].Status
		if !status.Tracked() {
			continue
		}
		entry := stats.ByStatus[status]
		entry.Count++
		entry.Amount = entry.Amount.Add(amount)
		stats.ByStatus[status] = entry
	}

	return stats
}
