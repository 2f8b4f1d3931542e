package graph

import (
	"fmt"

	"sector-sim/internal/simerr"
)

// DistancesFrom returns every sector reachable from origin mapped to its
// distance in hops. Unknown origins yield an empty map, and lanes to
// unknown sectors are not followed.
func (u *Universe) DistancesFrom(origin int) map[int]int {
	result := make(map[int]int)
	if u.Sectors[origin] == nil {
		return result
	}
	result[origin] = 0

	queue := []int{origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		dist := result[current]
		for _, neighbor := range u.Sectors[current].Neighbors {
			if u.Sectors[neighbor] == nil {
				continue
			}
			if _, visited := result[neighbor]; !visited {
				result[neighbor] = dist + 1
				queue = append(queue, neighbor)
			}
		}
	}
	return result
}

// Distance returns the shortest hop count between a and b.
// ok is false when either sector is unknown or b is unreachable from a.
func (u *Universe) Distance(a, b int) (hops int, ok bool) {
	path, ok := u.Path(a, b)
	if !ok {
		return 0, false
	}
	return len(path) - 1, true
}

// Path returns a shortest sequence of sector IDs from a to b, inclusive of
// both ends; [a] when a == b. Neighbors are expanded in ascending ID order,
// so the result is deterministic.
func (u *Universe) Path(a, b int) ([]int, bool) {
	if u.Sectors[a] == nil || u.Sectors[b] == nil {
		return nil, false
	}
	if a == b {
		return []int{a}, true
	}

	prev := map[int]int{a: a}
	queue := []int{a}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range u.Sectors[current].Neighbors {
			if _, seen := prev[neighbor]; seen || u.Sectors[neighbor] == nil {
				continue
			}
			prev[neighbor] = current
			if neighbor == b {
				return walkBack(prev, a, b), true
			}
			queue = append(queue, neighbor)
		}
	}
	return nil, false
}

func walkBack(prev map[int]int, a, b int) []int {
	var rev []int
	for id := b; id != a; id = prev[id] {
		rev = append(rev, id)
	}
	rev = append(rev, a)
	out := make([]int, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}

// Validate checks the structural invariants every generated or loaded
// universe must hold: lanes are symmetric, there are no self lanes, the hub
// carries no port, and all sectors form one connected component.
// Violations wrap simerr.ErrInvariant.
func (u *Universe) Validate() error {
	if len(u.Sectors) == 0 {
		return fmt.Errorf("empty universe: %w", simerr.ErrInvariant)
	}
	for _, id := range u.IDs() {
		s := u.Sectors[id]
		if s.ID != id {
			return fmt.Errorf("sector keyed %d has ID %d: %w", id, s.ID, simerr.ErrInvariant)
		}
		for _, n := range s.Neighbors {
			other := u.Sectors[n]
			if other == nil {
				return fmt.Errorf("sector %d lists unknown neighbor %d: %w", id, n, simerr.ErrInvariant)
			}
			if n == id {
				return fmt.Errorf("sector %d has a self lane: %w", id, simerr.ErrInvariant)
			}
			if !other.Adjacent(id) {
				return fmt.Errorf("one-way lane %d -> %d: %w", id, n, simerr.ErrInvariant)
			}
		}
		if s.Kind == Hub && s.Port != nil {
			return fmt.Errorf("hub sector %d has a port: %w", id, simerr.ErrInvariant)
		}
	}
	first := u.IDs()[0]
	if reached := len(u.DistancesFrom(first)); reached != len(u.Sectors) {
		return fmt.Errorf("universe disconnected: %d of %d sectors reachable from %d: %w",
			reached, len(u.Sectors), first, simerr.ErrInvariant)
	}
	return nil
}
