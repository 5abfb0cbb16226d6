package analysis

import (
	"fmt"
	"sort"

	"kids-screentime/internal/models"
)

// Count is the frequency of one category.
type Count struct {
	Category string
	Count    int
}

// ValueCounts tallies each distinct non-missing value of column, most
// frequent first with ties ordered by name.
func ValueCounts(t *models.Table, column string) ([]Count, error) {
	if err := RequireColumns(t, column); err != nil {
		return nil, err
	}

	records := t.Strings(column)
	missing := t.Missing(column)

	index := make(map[string]int)
	var counts []Count
	for i, rec := range records {
		if i < len(missing) && missing[i] {
			continue
		}
		pos, ok := index[rec]
		if !ok {
			pos = len(counts)
			index[rec] = pos
			counts = append(counts, Count{Category: rec})
		}
		counts[pos].Count++
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("%s: %w", column, ErrNoValues)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	return counts, nil
}

// Total sums the counts.
func Total(counts []Count) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
