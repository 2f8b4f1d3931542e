package engine

import (
	"sector-sim/internal/goods"
	"sector-sim/internal/market"
)

// Recommendation is the best two-stop trade: buy at FromSector, haul, sell at ToSector.
type Recommendation struct {
	FromSector      int
	ToSector        int
	Commodity       goods.Commodity
	BuyPrice        int // price the source port sells at
	SellPrice       int // price the destination port buys at
	ProfitPerUnit   int
	Jumps           int     // hops from FromSector to ToSector
	Score           float64 // ProfitPerUnit / Jumps
	MaxUnits        int     // limited by free holds and credits
	EstimatedProfit int
	PathToBuy       []int // player's location to FromSector, inclusive; nil if unreachable
}

// PortQuote is one row of the market report.
type PortQuote struct {
	Sector int
	Name   string
	Class  string // BSS, SBS or SSB
	Quotes []market.Quote
}
