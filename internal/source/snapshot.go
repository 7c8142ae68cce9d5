// Package source provides the snapshot-backed record source: a fully
// materialized, immutable copy of the record population held in memory.
package source

import (
	"context"
	"sort"
	"sync"

	"salesdash/internal/domain"
	"salesdash/internal/query"
)

// Snapshot holds the record population in memory. The slice handed to
// Replace is owned by the snapshot from then on and must not be mutated by
// the caller. Reads take a read lock, so any number of queries can run
// concurrently; Replace swaps the whole population atomically.
//
// An empty snapshot is valid and matches zero records.
type Snapshot struct {
	mu      sync.RWMutex
	records []domain.Transaction
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Replace swaps in a new record population.
func (s *Snapshot) Replace(records []domain.Transaction) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

// Len returns the population size.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Matched scans the population and returns copies of the records the
// predicate accepts.
func (s *Snapshot) Matched(ctx context.Context, p *query.Predicate) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Transaction, 0)
	for i := range s.records {
		if p.Match(&s.records[i]) {
			matched = append(matched, s.records[i])
		}
	}
	return matched, nil
}

// Metadata scans the full population for the distinct values of each
// filterable dimension, sorted.
func (s *Snapshot) Metadata(ctx context.Context) (*domain.FilterMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regions := map[string]struct{}{}
	categories := map[string]struct{}{}
	paymentMethods := map[string]struct{}{}
	genders := map[string]struct{}{}
	tags := map[string]struct{}{}

	for i := range s.records {
		r := &s.records[i]
		addNonEmpty(regions, r.Region)
		addNonEmpty(categories, r.Category)
		addNonEmpty(paymentMethods, r.PaymentMethod)
		addNonEmpty(genders, string(r.Gender))
		for _, tag := range r.TagList() {
			tags[tag] = struct{}{}
		}
	}

	return &domain.FilterMetadata{
		Regions:        sortedKeys(regions),
		Categories:     sortedKeys(categories),
		PaymentMethods: sortedKeys(paymentMethods),
		Genders:        sortedKeys(genders),
		Tags:           sortedKeys(tags),
	}, nil
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
