package world

import (
	"fmt"

	"sector-sim/internal/goods"
	"sector-sim/internal/graph"
	"sector-sim/internal/market"
)

// Problem is one failed audit check.
type Problem struct {
	Check  string // sectors, lanes, connectivity, ports, planets, kinds
	Sector int
	Detail string
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] sector %d: %s", p.Check, p.Sector, p.Detail)
}

// Audit walks the whole universe and reports every broken rule instead of
// stopping at the first one. A healthy universe yields no problems.
func Audit(u *graph.Universe) []Problem {
	var out []Problem
	add := func(check string, sector int, format string, args ...any) {
		out = append(out, Problem{Check: check, Sector: sector, Detail: fmt.Sprintf(format, args...)})
	}

	ids := u.IDs()
	if len(ids) == 0 {
		add("sectors", 0, "universe has no sectors")
		return out
	}

	for _, id := range ids {
		s := u.Sector(id)
		if s.ID != id {
			add("sectors", id, "keyed as %d but ID is %d", id, s.ID)
		}
		for _, n := range s.Neighbors {
			other := u.Sector(n)
			switch {
			case other == nil:
				add("sectors", id, "links to unknown sector %d", n)
			case n == id:
				add("lanes", id, "self lane")
			case !other.Adjacent(id):
				add("lanes", id, "one-way lane to %d", n)
			}
		}
		if len(s.Neighbors) == 0 && len(ids) > 1 {
			add("connectivity", id, "isolated")
		}
		auditKind(s, add)
		if s.Port != nil {
			auditPort(id, s.Port, add)
		}
		if s.Planet != nil {
			auditPlanet(id, s.Planet, add)
		}
	}

	reached := u.DistancesFrom(ids[0])
	for _, id := range ids {
		if _, ok := reached[id]; !ok {
			add("connectivity", id, "unreachable from sector %d", ids[0])
		}
	}
	return out
}

type addFunc func(check string, sector int, format string, args ...any)

func auditKind(s *graph.Sector, add addFunc) {
	if _, err := graph.ParseKind(s.Kind.String()); err != nil {
		add("kinds", s.ID, "unknown kind %v", s.Kind)
		return
	}
	switch s.Kind {
	case graph.Hub:
		if s.ID != graph.HubID {
			add("kinds", s.ID, "hub outside sector %d", graph.HubID)
		}
		if s.Port != nil {
			add("kinds", s.ID, "hub has a port")
		}
	case graph.Hostile:
		if s.ID <= graph.SafeZoneCount {
			add("kinds", s.ID, "hostile sector inside the safe zone")
		}
	case graph.DeadEnd:
		if len(s.Neighbors) != 1 {
			add("kinds", s.ID, "dead end with %d neighbors", len(s.Neighbors))
		}
	case graph.SafeZone, graph.Normal:
		if s.Pirates {
			add("kinds", s.ID, "%v sector has pirates", s.Kind)
		}
	}
}

func auditPort(id int, p *market.Port, add addFunc) {
	if _, err := p.Class.Directions(); err != nil {
		add("ports", id, "invalid class %d", p.Class)
		return
	}
	buys := 0
	for _, c := range goods.All {
		if p.Buys(c) {
			buys++
		}
		if lvl := p.Level(c); lvl < market.MinLevel || lvl > market.MaxLevel {
			add("ports", id, "%s level %d outside %d..%d", c, lvl, market.MinLevel, market.MaxLevel)
		}
		if price := p.Price(c); price < market.PriceFloor {
			add("ports", id, "%s price %d below floor %d", c, price, market.PriceFloor)
		}
	}
	if buys != 1 {
		add("ports", id, "buys %d commodities, want 1", buys)
	}
}

func auditPlanet(id int, p *market.Planet, add addFunc) {
	if p.SectorID != id {
		add("planets", id, "planet records sector %d", p.SectorID)
	}
	if p.Treasury < 0 {
		add("planets", id, "treasury negative (%d)", p.Treasury)
	}
	for _, c := range goods.All {
		if q := p.Goods[c.Index()]; q < 0 {
			add("planets", id, "%s stock negative (%d)", c, q)
		}
	}
}
