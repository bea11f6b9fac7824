package aggregator

import (
	"sort"

	"github.com/gitspan/gitspan/internal/core/model"
)

// Aggregate merges per-repository record batches into one collection sorted
// by commit timestamp ascending. Batches must be passed in repository
// argument order: the sort is stable, so records with equal timestamps keep
// their production order (repository order, then branch enumeration order,
// then walk visitation order).
func Aggregate(batches [][]model.CommitRecord) []model.CommitRecord {
	total := 0
	for _, batch := range batches {
		total += len(batch)
	}

	merged := make([]model.CommitRecord, 0, total)
	for _, batch := range batches {
		merged = append(merged, batch...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})

	return merged
}
