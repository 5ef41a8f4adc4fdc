package production

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
)

// canonicalSizes is the display order for the sizes the workshop uses.
// Custom labels sort after these, alphabetically.
var canonicalSizes = []string{"P", "M", "G", "GG", "G1", "G2", "G3"}

var canonicalRank = func() map[string]int {
	m := make(map[string]int, len(canonicalSizes))
	for i, s := range canonicalSizes {
		m[s] = i
	}
	return m
}()

// SizeGrid maps a size label to a piece count
type SizeGrid map[string]int

// Total returns the sum of all counts
func (g SizeGrid) Total() int {
	total := 0
	for _, n := range g {
		total += n
	}
	return total
}

// Get returns the count for a size, 0 when absent
func (g SizeGrid) Get(size string) int {
	return g[size]
}

// Clone returns an independent copy
func (g SizeGrid) Clone() SizeGrid {
	out := make(SizeGrid, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// Labels returns the size labels in display order
func (g SizeGrid) Labels() []string {
	labels := make([]string, 0, len(g))
	for k := range g {
		labels = append(labels, k)
	}
	SortSizeLabels(labels)
	return labels
}

// Validate rejects blank labels and negative counts
func (g SizeGrid) Validate() error {
	for label, n := range g {
		if strings.TrimSpace(label) == "" {
			return shared.NewDomainError("INVALID_SIZE", "Size label cannot be empty")
		}
		if n < 0 {
			return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Size %s cannot have a negative count", label))
		}
	}
	return nil
}

// SortSizeLabels sorts labels in place: known sizes first in grid order,
// then custom labels alphabetically.
func SortSizeLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		ri, iok := canonicalRank[labels[i]]
		rj, jok := canonicalRank[labels[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		}
		return labels[i] < labels[j]
	})
}
