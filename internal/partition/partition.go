// Package partition distributes entity quotas across ordered categories.
package partition

import "errors"

// ErrNoCategories indicates an empty category list was passed to Split.
var ErrNoCategories = errors.New("partition: category list must not be empty")

// Category is one bucket of a partitioned total.
type Category struct {
	Name    string // Category name as given
	Count   int    // Entities assigned to this category
	Ordinal int    // Position in the original category order
}

// Split distributes total across the named categories.
//
// Every category receives total/len(names); the first total%len(names)
// categories, in the given order, receive one extra. The counts always sum
// to total exactly. total == 0 yields all-zero counts.
func Split(total int, names []string) ([]Category, error) {
	if len(names) == 0 {
		return nil, ErrNoCategories
	}
	if total < 0 {
		total = 0
	}

	base := total / len(names)
	remainder := total % len(names)

	out := make([]Category, len(names))
	for i, name := range names {
		count := base
		if i < remainder {
			count++
		}
		out[i] = Category{Name: name, Count: count, Ordinal: i}
	}
	return out, nil
}

// Counts returns the partition as a name -> count map.
func Counts(categories []Category) map[string]int {
	out := make(map[string]int, len(categories))
	for _, c := range categories {
		out[c.Name] = c.Count
	}
	return out
}
