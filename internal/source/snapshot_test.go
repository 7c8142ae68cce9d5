package source

import (
	"context"
	"sync"
	"testing"

	"salesdash/internal/domain"
	"salesdash/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []domain.Transaction {
	return []domain.Transaction{
		{TransactionID: "a", Region: "North", Category: "Grocery", PaymentMethod: "UPI", Gender: domain.GenderFemale, Tags: "organic, fresh"},
		{TransactionID: "b", Region: "South", Category: "Electronics", PaymentMethod: "Card", Gender: domain.GenderMale, Tags: "bulk"},
		{TransactionID: "c", Region: "North", Category: "Grocery", PaymentMethod: "Cash", Gender: domain.GenderMale, Tags: ""},
	}
}

func TestEmptySnapshotMatchesNothing(t *testing.T) {
	snap := NewSnapshot()

	matched, err := snap.Matched(context.Background(), query.BuildPredicate(domain.FilterSpec{}))
	require.NoError(t, err)
	assert.Empty(t, matched, "unloaded snapshot is zero records, not an error")
	assert.Equal(t, 0, snap.Len())
}

func TestSnapshotMatchedAppliesPredicate(t *testing.T) {
	snap := NewSnapshot()
	snap.Replace(testRecords())

	all, err := snap.Matched(context.Background(), query.BuildPredicate(domain.FilterSpec{}))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	north, err := snap.Matched(context.Background(), query.BuildPredicate(domain.FilterSpec{Regions: []string{"North"}}))
	require.NoError(t, err)
	require.Len(t, north, 2)
	assert.Equal(t, "a", north[0].TransactionID)
	assert.Equal(t, "c", north[1].TransactionID)
}

func TestSnapshotMetadataDistinctSorted(t *testing.T) {
	snap := NewSnapshot()
	snap.Replace(testRecords())

	meta, err := snap.Metadata(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"North", "South"}, meta.Regions)
	assert.Equal(t, []string{"Electronics", "Grocery"}, meta.Categories)
	assert.Equal(t, []string{"Card", "Cash", "UPI"}, meta.PaymentMethods)
	assert.Equal(t, []string{"Female", "Male"}, meta.Genders)
	assert.Equal(t, []string{"bulk", "fresh", "organic"}, meta.Tags, "tags are split and trimmed before distinctness")
}

func TestSnapshotReplaceSwapsPopulation(t *testing.T) {
	snap := NewSnapshot()
	snap.Replace(testRecords())
	require.Equal(t, 3, snap.Len())

	snap.Replace([]domain.Transaction{{TransactionID: "only"}})
	assert.Equal(t, 1, snap.Len())
}

func TestSnapshotConcurrentReaders(t *testing.T) {
	snap := NewSnapshot()
	snap.Replace(testRecords())
	p := query.BuildPredicate(domain.FilterSpec{Regions: []string{"North"}})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matched, err := snap.Matched(context.Background(), p)
			assert.NoError(t, err)
			assert.Len(t, matched, 2)
		}()
	}
	wg.Wait()
}
