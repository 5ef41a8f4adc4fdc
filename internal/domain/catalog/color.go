package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ColorSwatch is a named color with its display value
type ColorSwatch struct {
	Name string
	Hex  string
}

// NormalizeHex uppercases a #RRGGBB value. Empty stays empty.
func NormalizeHex(hex string) (string, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return "", nil
	}
	if !hexColorPattern.MatchString(hex) {
		return "", shared.NewDomainError("INVALID_COLOR_HEX", fmt.Sprintf("%q is not a #RRGGBB color", hex))
	}
	return strings.ToUpper(hex), nil
}

func normalizeSwatches(colors []ColorSwatch) ([]ColorSwatch, error) {
	out := make([]ColorSwatch, 0, len(colors))
	seen := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_COLOR", "Color name cannot be empty")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, shared.NewDomainError("DUPLICATE_COLOR", fmt.Sprintf("Color %s appears more than once", name))
		}
		seen[key] = struct{}{}
		hex, err := NormalizeHex(c.Hex)
		if err != nil {
			return nil, err
		}
		out = append(out, ColorSwatch{Name: name, Hex: hex})
	}
	return out, nil
}
