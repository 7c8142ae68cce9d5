package query

import (
	"fmt"
	"testing"

	"salesdash/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRecords(n int) []domain.Transaction {
	records := make([]domain.Transaction, n)
	for i := range records {
		records[i].TransactionID = fmt.Sprintf("TX-%02d", i+1)
	}
	return records
}

func TestPaginateSecondPageOfFifteen(t *testing.T) {
	records := numberedRecords(15)

	page, meta := Paginate(records, domain.PageRequest{Page: 2, Limit: 10})

	require.Len(t, page, 5)
	assert.Equal(t, "TX-11", page[0].TransactionID)
	assert.Equal(t, "TX-15", page[4].TransactionID)
	assert.Equal(t, 15, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
}

func TestPaginatePastEndYieldsEmptyPage(t *testing.T) {
	records := numberedRecords(3)

	page, meta := Paginate(records, domain.PageRequest{Page: 5, Limit: 10})

	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestPaginateEmptySet(t *testing.T) {
	page, meta := Paginate(nil, domain.PageRequest{Page: 1, Limit: 10})

	assert.Empty(t, page)
	assert.Equal(t, 0, meta.Total)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestPaginationIsAPartition(t *testing.T) {
	records := numberedRecords(23)
	limit := 5

	var reassembled []domain.Transaction
	_, meta := Paginate(records, domain.PageRequest{Page: 1, Limit: limit})
	for p := 1; p <= meta.TotalPages; p++ {
		page, _ := Paginate(records, domain.PageRequest{Page: p, Limit: limit})
		reassembled = append(reassembled, page...)
	}

	require.Len(t, reassembled, len(records))
	for i := range records {
		assert.Equal(t, records[i].TransactionID, reassembled[i].TransactionID)
	}
}
