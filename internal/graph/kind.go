package graph

import (
	"fmt"
	"strings"

	"sector-sim/internal/simerr"
)

// Kind tags a sector's role in the universe.
type Kind uint8

const (
	Normal Kind = iota + 1
	SafeZone
	Hub
	Hostile
	DeadEnd
)

// Kinds lists every sector kind.
var Kinds = []Kind{Normal, SafeZone, Hub, Hostile, DeadEnd}

func (k Kind) String() string {
	switch k {
	case Normal:
		return "NORMAL"
	case SafeZone:
		return "SAFE_ZONE"
	case Hub:
		return "HUB"
	case Hostile:
		return "HOSTILE"
	case DeadEnd:
		return "DEAD_END"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String. Unknown tags are rejected.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NORMAL":
		return Normal, nil
	case "SAFE_ZONE":
		return SafeZone, nil
	case "HUB":
		return Hub, nil
	case "HOSTILE":
		return Hostile, nil
	case "DEAD_END":
		return DeadEnd, nil
	default:
		return 0, fmt.Errorf("unknown sector kind %q: %w", s, simerr.ErrValidation)
	}
}
