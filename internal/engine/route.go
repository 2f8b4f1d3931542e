package engine

import (
	"fmt"
	"slices"

	"sector-sim/internal/goods"
	"sector-sim/internal/graph"
	"sector-sim/internal/logger"
	"sector-sim/internal/market"
	"sector-sim/internal/ship"
)

// priceIndex is a snapshot of port prices keyed by what each port does with
// a commodity.
type priceIndex struct {
	// sells[c][sector] = price the port in sector sells c at
	sells [goods.Count]map[int]int
	// buys[c][sector] = price the port in sector buys c at
	buys [goods.Count]map[int]int
	// sectors holding a port, ascending
	sectors []int
}

func buildPriceIndex(ports map[int]*market.Port) *priceIndex {
	idx := &priceIndex{sectors: sortedKeys(ports)}
	for i := range goods.Count {
		idx.sells[i] = make(map[int]int)
		idx.buys[i] = make(map[int]int)
	}
	for _, id := range idx.sectors {
		p := ports[id]
		for _, c := range goods.All {
			switch {
			case p.Sells(c):
				idx.sells[c.Index()][id] = p.Price(c)
			case p.Buys(c):
				idx.buys[c.Index()][id] = p.Price(c)
			}
		}
	}
	return idx
}

// candidate is a scored buy/sell pair before sizing.
type candidate struct {
	from, to  int
	commodity goods.Commodity
	buy, sell int
	profit    int
	jumps     int
}

// beats reports whether c has a strictly greater profit-per-jump than best.
// Scores are compared by cross-multiplication so equal ratios tie exactly.
func (c candidate) beats(best *candidate) bool {
	if best == nil {
		return true
	}
	return c.profit*best.jumps > best.profit*c.jumps
}

// BestRoute finds the ordered port pair with the highest profit per jump.
// Pairs are visited source sector ascending, then destination sector
// ascending, then commodity in canonical order; on equal scores the first
// pair found is kept. The second result is false when no pair is profitable.
func BestRoute(u *graph.Universe, ports map[int]*market.Port, s *ship.Ship) (*Recommendation, bool) {
	idx := buildPriceIndex(ports)

	var best *candidate
	for _, from := range idx.sectors {
		dists := u.DistancesFrom(from)
		for _, to := range idx.sectors {
			if to == from {
				continue
			}
			d, ok := dists[to]
			if !ok || d == 0 {
				continue
			}
			for _, c := range goods.All {
				buy, ok := idx.sells[c.Index()][from]
				if !ok {
					continue
				}
				sell, ok := idx.buys[c.Index()][to]
				if !ok || sell-buy <= 0 {
					continue
				}
				cand := candidate{from: from, to: to, commodity: c, buy: buy, sell: sell, profit: sell - buy, jumps: d}
				if cand.beats(best) {
					best = &cand
				}
			}
		}
	}
	if best == nil {
		logger.Debug("Route", fmt.Sprintf("No profitable pair among %d ports", len(ports)))
		return nil, false
	}

	units := 0
	if best.buy > 0 {
		units = max(0, min(s.FreeHolds(), s.Credits/best.buy))
	}
	path, _ := u.Path(s.Location, best.from)
	rec := &Recommendation{
		FromSector:      best.from,
		ToSector:        best.to,
		Commodity:       best.commodity,
		BuyPrice:        best.buy,
		SellPrice:       best.sell,
		ProfitPerUnit:   best.profit,
		Jumps:           best.jumps,
		Score:           float64(best.profit) / float64(best.jumps),
		MaxUnits:        units,
		EstimatedProfit: units * best.profit,
		PathToBuy:       path,
	}
	logger.Debug("Route", fmt.Sprintf("Best: %s %d -> %d, %d cr/unit over %d jumps",
		rec.Commodity, rec.FromSector, rec.ToSector, rec.ProfitPerUnit, rec.Jumps))
	return rec, true
}

// MarketReport lists every port's class and current quotes, ascending sector.
func MarketReport(u *graph.Universe) []PortQuote {
	ports := u.Ports()
	out := make([]PortQuote, 0, len(ports))
	for _, id := range sortedKeys(ports) {
		p := ports[id]
		out = append(out, PortQuote{
			Sector: id,
			Name:   p.Name,
			Class:  p.ClassCode(),
			Quotes: p.Quotes(),
		})
	}
	return out
}

func sortedKeys(ports map[int]*market.Port) []int {
	ids := make([]int, 0, len(ports))
	for id, p := range ports {
		if p != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
