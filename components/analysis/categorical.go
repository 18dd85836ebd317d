package analysis

import (
	"sort"
	"strings"
)

// Frequency is how often a value occurs in a column.
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Distribution holds the value counts of one categorical column.
type Distribution struct {
	Column string      `json:"column"`
	Items  []Frequency `json:"items"`
}

// Total is the number of present values.
func (d Distribution) Total() int {
	total := 0
	for _, item := range d.Items {
		total += item.Count
	}
	return total
}

// Distributions counts values for every categorical column.
func Distributions(ds *Dataset) []Distribution {
	cols := ds.CategoricalColumns()
	out := make([]Distribution, 0, len(cols))
	for _, col := range cols {
		out = append(out, Distribution{Column: col.Name, Items: countValues(col)})
	}
	return out
}

// countValues sorts by descending count; ties keep first-appearance order.
func countValues(col Column) []Frequency {
	index := map[string]int{}
	var items []Frequency
	for i, raw := range col.Values {
		if col.Missing[i] {
			continue
		}
		v := strings.TrimSpace(raw)
		if pos, ok := index[v]; ok {
			items[pos].Count++
			continue
		}
		index[v] = len(items)
		items = append(items, Frequency{Value: v, Count: 1})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return items
}
