package production

import (
	"fmt"

	"github.com/atelier/backend/internal/domain/shared"
)

// DistributionRequest asks for pieces per color and size: color -> size -> quantity
type DistributionRequest map[string]map[string]int

// Total returns the sum of all requested quantities
func (r DistributionRequest) Total() int {
	total := 0
	for _, sizes := range r {
		for _, qty := range sizes {
			total += qty
		}
	}
	return total
}

// Ledger errors
var (
	ErrInsufficientPieces = shared.NewDomainError("INSUFFICIENT_PIECES", "Requested quantity exceeds the pieces available")
	ErrUnknownColor       = shared.NewDomainError("UNKNOWN_COLOR", "Requested color has no cut pieces available")
	ErrInvalidQuantity    = shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	ErrEmptyDistribution  = shared.NewDomainError("EMPTY_DISTRIBUTION", "Distribution must hand out at least one piece")
)

// Allocation is the result of applying a distribution request to the
// available cut pieces.
type Allocation struct {
	// Remaining is the new list of undistributed items. Items left without
	// pieces are dropped.
	Remaining []OrderItem
	// Granted holds exactly what the request took, one item per color that
	// received at least one piece.
	Granted []OrderItem
}

// Allocate subtracts request from available. It never modifies its inputs and
// is all-or-nothing: any negative quantity, unknown color or quantity above
// what is available fails the whole request. Zero quantities are ignored.
func Allocate(available []OrderItem, request DistributionRequest) (*Allocation, error) {
	if err := ValidateItems(available); err != nil {
		return nil, err
	}

	// Index the request by normalized color so "azul" and " Azul" are one key.
	wanted := make(map[string]map[string]int, len(request))
	for color, sizes := range request {
		key := colorKey(color)
		if _, dup := wanted[key]; dup {
			return nil, shared.NewDomainError("DUPLICATE_COLOR", fmt.Sprintf("Color %s is requested more than once", color))
		}
		idx := findItem(available, color)
		perSize := make(map[string]int, len(sizes))
		for size, qty := range sizes {
			if qty < 0 {
				return nil, shared.NewDomainError(ErrInvalidQuantity.Code,
					fmt.Sprintf("Quantity for %s/%s cannot be negative", color, size))
			}
			if qty == 0 {
				continue
			}
			if idx < 0 {
				return nil, shared.NewDomainError(ErrUnknownColor.Code,
					fmt.Sprintf("Color %s has no cut pieces available", color))
			}
			if have := available[idx].Sizes.Get(size); qty > have {
				return nil, shared.NewDomainError(ErrInsufficientPieces.Code,
					fmt.Sprintf("Cannot hand out %d pieces of %s/%s, only %d available", qty, color, size, have))
			}
			perSize[size] = qty
		}
		wanted[key] = perSize
	}

	alloc := &Allocation{
		Remaining: make([]OrderItem, 0, len(available)),
		Granted:   make([]OrderItem, 0, len(wanted)),
	}
	for _, item := range available {
		take := wanted[colorKey(item.Color)]

		rest := item.Clone()
		if len(take) > 0 {
			grant := OrderItem{
				Color:    item.Color,
				ColorHex: item.ColorHex,
				Sizes:    make(SizeGrid, len(take)),
			}
			for size, qty := range take {
				rest.Sizes[size] -= qty
				grant.Sizes[size] = qty
			}
			grant.Normalize()
			alloc.Granted = append(alloc.Granted, grant)
		}
		rest.Normalize()
		if rest.ActualPieces > 0 {
			alloc.Remaining = append(alloc.Remaining, rest)
		}
	}

	if len(alloc.Granted) == 0 {
		return nil, ErrEmptyDistribution
	}
	return alloc, nil
}

// ColorSizeCount is a flat view of a quantity used for reconciliation
type ColorSizeCount struct {
	Color string
	Size  string
	Count int
}

// Tally sums quantities per color and size across item lists
func Tally(lists ...[]OrderItem) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, items := range lists {
		for _, item := range items {
			key := colorKey(item.Color)
			if out[key] == nil {
				out[key] = make(map[string]int)
			}
			for size, n := range item.Sizes {
				out[key][size] += n
			}
		}
	}
	return out
}

// Discrepancies compares a baseline against the sum of the other lists and
// returns every color/size whose counts differ, as baseline minus accounted.
func Discrepancies(baseline []OrderItem, accounted ...[]OrderItem) []ColorSizeCount {
	want := Tally(baseline)
	got := Tally(accounted...)

	var diffs []ColorSizeCount
	seen := make(map[string]map[string]bool)
	record := func(color, size string) {
		if seen[color] == nil {
			seen[color] = make(map[string]bool)
		}
		if seen[color][size] {
			return
		}
		seen[color][size] = true
		if d := want[color][size] - got[color][size]; d != 0 {
			diffs = append(diffs, ColorSizeCount{Color: color, Size: size, Count: d})
		}
	}
	for color, sizes := range want {
		for size := range sizes {
			record(color, size)
		}
	}
	for color, sizes := range got {
		for size := range sizes {
			record(color, size)
		}
	}
	return diffs
}
