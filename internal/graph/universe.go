package graph

import (
	"fmt"
	"slices"

	"sector-sim/internal/market"
)

// Sector is one node of the universe.
type Sector struct {
	ID int
	// Neighbors holds the IDs of adjacent sectors in ascending order.
	Neighbors []int
	Kind      Kind
	// Pirates marks a hostile sector whose pirates have not been defeated yet.
	Pirates bool
	Port    *market.Port
	Planet  *market.Planet
}

// Adjacent reports whether a warp lane joins s and id.
func (s *Sector) Adjacent(id int) bool {
	_, ok := slices.BinarySearch(s.Neighbors, id)
	return ok
}

// Universe holds sectors 1..n connected by symmetric warp lanes.
type Universe struct {
	Sectors map[int]*Sector
}

// NewUniverse creates n isolated sectors with IDs 1..n.
func NewUniverse(n int) *Universe {
	u := &Universe{Sectors: make(map[int]*Sector, n)}
	for id := 1; id <= n; id++ {
		u.Sectors[id] = &Sector{ID: id, Kind: Normal}
	}
	return u
}

// Len is the number of sectors.
func (u *Universe) Len() int {
	return len(u.Sectors)
}

// Sector returns the sector with the given ID, or nil.
func (u *Universe) Sector(id int) *Sector {
	return u.Sectors[id]
}

// IDs returns every sector ID in ascending order.
func (u *Universe) IDs() []int {
	ids := make([]int, 0, len(u.Sectors))
	for id := range u.Sectors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AddLane adds a bidirectional warp lane. Self lanes and duplicates are no-ops.
// It reports whether a new lane was created.
func (u *Universe) AddLane(a, b int) (bool, error) {
	sa, sb := u.Sectors[a], u.Sectors[b]
	if sa == nil || sb == nil {
		return false, fmt.Errorf("lane %d-%d: unknown sector", a, b)
	}
	if a == b || sa.Adjacent(b) {
		return false, nil
	}
	sa.Neighbors = insertSorted(sa.Neighbors, b)
	sb.Neighbors = insertSorted(sb.Neighbors, a)
	return true, nil
}

func insertSorted(ids []int, id int) []int {
	i, _ := slices.BinarySearch(ids, id)
	return slices.Insert(ids, i, id)
}

// Ports maps sector ID to port for every sector that has one.
func (u *Universe) Ports() map[int]*market.Port {
	out := make(map[int]*market.Port)
	for id, s := range u.Sectors {
		if s.Port != nil {
			out[id] = s.Port
		}
	}
	return out
}

// Planets lists every planet in ascending sector order.
func (u *Universe) Planets() []*market.Planet {
	var out []*market.Planet
	for _, id := range u.IDs() {
		if p := u.Sectors[id].Planet; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// LaneCount is the number of undirected warp lanes.
func (u *Universe) LaneCount() int {
	total := 0
	for _, s := range u.Sectors {
		total += len(s.Neighbors)
	}
	return total / 2
}

// CountKind returns how many sectors carry kind k.
func (u *Universe) CountKind(k Kind) int {
	n := 0
	for _, s := range u.Sectors {
		if s.Kind == k {
			n++
		}
	}
	return n
}
