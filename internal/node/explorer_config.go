package node

import "sort"

// ExplorerConfig carries the filters and sorters applied to every scan.
// Filters form an ordered set deduplicated by value; sorters an ordered
// sequence unique by kind.
type ExplorerConfig struct {
	Filters []FilterApplicable
	Sorters []SorterApplicable
}

// Clone returns a deep copy so resets can restore the initial pipeline.
func (c ExplorerConfig) Clone() ExplorerConfig {
	out := ExplorerConfig{
		Filters: make([]FilterApplicable, len(c.Filters)),
		Sorters: make([]SorterApplicable, len(c.Sorters)),
	}
	copy(out.Filters, c.Filters)
	copy(out.Sorters, c.Sorters)
	return out
}

// HasFilter reports whether the exact filter (kind and input) is present.
func (c *ExplorerConfig) HasFilter(f FilterApplicable) bool {
	for _, existing := range c.Filters {
		if existing == f {
			return true
		}
	}
	return false
}

// AddFilter inserts f unless an identical filter is already present.
func (c *ExplorerConfig) AddFilter(f FilterApplicable) {
	if !c.HasFilter(f) {
		c.Filters = append(c.Filters, f)
	}
}

// RemoveFilter drops the exact filter if present.
func (c *ExplorerConfig) RemoveFilter(f FilterApplicable) {
	for i, existing := range c.Filters {
		if existing == f {
			c.Filters = append(c.Filters[:i], c.Filters[i+1:]...)
			return
		}
	}
}

// ToggleFilter inserts f when absent and removes it when present.
func (c *ExplorerConfig) ToggleFilter(f FilterApplicable) {
	if c.HasFilter(f) {
		c.RemoveFilter(f)
	} else {
		c.Filters = append(c.Filters, f)
	}
}

// RemoveLastFilter drops the most recently added filter.
func (c *ExplorerConfig) RemoveLastFilter() {
	if len(c.Filters) > 0 {
		c.Filters = c.Filters[:len(c.Filters)-1]
	}
}

// ClearFilters drops every filter.
func (c *ExplorerConfig) ClearFilters() {
	c.Filters = nil
}

// AddSorter appends s, replacing any existing sorter of the same kind in
// place (the position in the sequence is retained, only the direction
// changes).
func (c *ExplorerConfig) AddSorter(s SorterApplicable) {
	for i, existing := range c.Sorters {
		if existing.Sorter == s.Sorter {
			c.Sorters[i] = s
			return
		}
	}
	c.Sorters = append(c.Sorters, s)
}

// RemoveSorter drops the sorter of the given kind.
func (c *ExplorerConfig) RemoveSorter(kind SorterKind) {
	for i, existing := range c.Sorters {
		if existing.Sorter == kind {
			c.Sorters = append(c.Sorters[:i], c.Sorters[i+1:]...)
			return
		}
	}
}

// RemoveLastSorter drops the most recently added sorter.
func (c *ExplorerConfig) RemoveLastSorter() {
	if len(c.Sorters) > 0 {
		c.Sorters = c.Sorters[:len(c.Sorters)-1]
	}
}

// ReverseSorters flips the direction of every sorter.
func (c *ExplorerConfig) ReverseSorters() {
	for i := range c.Sorters {
		c.Sorters[i].Reverse = !c.Sorters[i].Reverse
	}
}

// ClearSorters drops every sorter.
func (c *ExplorerConfig) ClearSorters() {
	c.Sorters = nil
}

// Apply filters nodes (conjunction) and stable-sorts the survivors with the
// composite comparator: the first sorter yielding a non-equal ordering wins.
func (c ExplorerConfig) Apply(nodes []Node) []Node {
	filtered := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		keep := true
		for _, f := range c.Filters {
			if !f.Apply(n) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, n)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		for _, s := range c.Sorters {
			switch ord := s.Compare(filtered[i], filtered[j]); {
			case ord < 0:
				return true
			case ord > 0:
				return false
			}
		}
		return false
	})

	return filtered
}
