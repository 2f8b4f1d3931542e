package goods

import (
	"fmt"
	"strings"

	"sector-sim/internal/simerr"
)

// Commodity is one of the three tradeable goods. The zero value is invalid.
type Commodity uint8

const (
	Ore Commodity = iota + 1
	Organics
	Equipment
)

// Count is the number of commodities; arrays indexed by Commodity.Index have this length.
const Count = 3

// All lists the commodities in canonical order (port class codes, reports, iteration).
var All = [Count]Commodity{Ore, Organics, Equipment}

// DefaultBasePrices holds the base price of each commodity, indexed by Index().
var DefaultBasePrices = [Count]int{40, 30, 80}

// Index returns the 0-based array slot for c. Only valid when c.Valid().
func (c Commodity) Index() int {
	return int(c) - 1
}

// Valid reports whether c is one of the known commodities.
func (c Commodity) Valid() bool {
	return c >= Ore && c <= Equipment
}

func (c Commodity) String() string {
	switch c {
	case Ore:
		return "ore"
	case Organics:
		return "organics"
	case Equipment:
		return "equipment"
	default:
		return fmt.Sprintf("commodity(%d)", uint8(c))
	}
}

// Parse maps a name ("ore", "Organics", ...) to its Commodity.
func Parse(name string) (Commodity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ore":
		return Ore, nil
	case "organics":
		return Organics, nil
	case "equipment":
		return Equipment, nil
	default:
		return 0, fmt.Errorf("unknown commodity %q: %w", name, simerr.ErrValidation)
	}
}

// Check returns a validation error when c is not a known commodity.
func Check(c Commodity) error {
	if !c.Valid() {
		return fmt.Errorf("unknown %s: %w", c, simerr.ErrValidation)
	}
	return nil
}
