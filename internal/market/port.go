package market

import (
	"fmt"
	"strings"

	"sector-sim/internal/goods"
	"sector-sim/internal/rng"
	"sector-sim/internal/ship"
	"sector-sim/internal/simerr"
)

const (
	// PriceFloor is the lowest price any port quotes.
	PriceFloor = 5
	// MaxLevel and MinLevel bound a commodity supply level.
	MaxLevel = 100
	MinLevel = 0
	// Randomly generated ports start each level in [initLevelLo, initLevelHi].
	initLevelLo = 20
	initLevelHi = 80
)

// Direction is what a port does with a commodity, from the port's side.
type Direction uint8

const (
	Buys  Direction = iota + 1 // port buys from the player
	Sells                      // port sells to the player
)

func (d Direction) String() string {
	switch d {
	case Buys:
		return "buys"
	case Sells:
		return "sells"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Class is one of the three canonical buy/sell patterns. Each buys exactly
// one commodity and sells the other two.
type Class uint8

const (
	ClassBSS Class = iota + 1 // buys ore
	ClassSBS                  // buys organics
	ClassSSB                  // buys equipment
)

// Classes lists every valid class.
var Classes = []Class{ClassBSS, ClassSBS, ClassSSB}

// Directions returns the per-commodity assignment for c.
func (c Class) Directions() ([goods.Count]Direction, error) {
	var bought goods.Commodity
	switch c {
	case ClassBSS:
		bought = goods.Ore
	case ClassSBS:
		bought = goods.Organics
	case ClassSSB:
		bought = goods.Equipment
	default:
		return [goods.Count]Direction{}, fmt.Errorf("unknown port class %d: %w", uint8(c), simerr.ErrValidation)
	}
	var out [goods.Count]Direction
	for _, com := range goods.All {
		out[com.Index()] = Sells
	}
	out[bought.Index()] = Buys
	return out, nil
}

// Code renders the class as its B/S code, e.g. "SBS".
func (c Class) Code() string {
	dirs, err := c.Directions()
	if err != nil {
		return "???"
	}
	var b strings.Builder
	for _, d := range dirs {
		if d == Buys {
			b.WriteByte('B')
		} else {
			b.WriteByte('S')
		}
	}
	return b.String()
}

// PortSpec configures NewPort. Zero fields are filled in randomly or from defaults.
type PortSpec struct {
	Name   string
	Class  Class             // 0 = uniform among Classes
	Levels *[goods.Count]int // nil = each uniform in [20, 80]
	Base   [goods.Count]int  // all zero = goods.DefaultBasePrices
}

// Port is a trading post with a fixed class and supply-driven prices.
type Port struct {
	Name   string
	Class  Class
	Levels [goods.Count]int
	Base   [goods.Count]int

	dirs   [goods.Count]Direction
	prices [goods.Count]int
}

// NewPort builds a port, drawing any unspecified attributes from r.
func NewPort(r rng.Source, spec PortSpec) (*Port, error) {
	p := &Port{Name: spec.Name, Class: spec.Class, Base: spec.Base}
	if p.Name == "" {
		p.Name = randomName(r, portPrefixes, portSuffixes)
	}
	if p.Class == 0 {
		p.Class = rng.Pick(r, Classes)
	}
	if spec.Levels != nil {
		p.Levels = *spec.Levels
	} else {
		for i := range p.Levels {
			p.Levels[i] = rng.Between(r, initLevelLo, initLevelHi)
		}
	}
	if p.Base == ([goods.Count]int{}) {
		p.Base = goods.DefaultBasePrices
	}
	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePort rebuilds a port from persisted fields, recomputing prices.
func RestorePort(name string, class Class, levels, base [goods.Count]int) (*Port, error) {
	p := &Port{Name: name, Class: class, Levels: levels, Base: base}
	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Port) init() error {
	dirs, err := p.Class.Directions()
	if err != nil {
		return err
	}
	p.dirs = dirs
	for i, lvl := range p.Levels {
		if lvl < MinLevel || lvl > MaxLevel {
			return fmt.Errorf("port %q: level %d outside %d..%d: %w", p.Name, lvl, MinLevel, MaxLevel, simerr.ErrValidation)
		}
		if p.Base[i] <= 0 {
			return fmt.Errorf("port %q: base price must be positive: %w", p.Name, simerr.ErrValidation)
		}
	}
	p.recompute()
	return nil
}

// priceFor applies the supply curve in integer arithmetic:
//
//	sells: base * (0.6 + (100-L)/150) = base * (190-L) / 150
//	buys:  base * (1.0 + L/150)       = base * (150+L) / 150
func priceFor(dir Direction, base, level int) int {
	var p int
	switch dir {
	case Sells:
		p = base * (190 - level) / 150
	case Buys:
		p = base * (150 + level) / 150
	}
	return max(PriceFloor, p)
}

func (p *Port) recompute() {
	for i := range p.prices {
		p.prices[i] = priceFor(p.dirs[i], p.Base[i], p.Levels[i])
	}
}

// ClassCode is the port's B/S code ("BSS", "SBS" or "SSB").
func (p *Port) ClassCode() string {
	return p.Class.Code()
}

// Direction returns the fixed trade direction for c (0 for unknown commodities).
func (p *Port) Direction(c goods.Commodity) Direction {
	if !c.Valid() {
		return 0
	}
	return p.dirs[c.Index()]
}

// Sells reports whether the player can buy c here.
func (p *Port) Sells(c goods.Commodity) bool { return p.Direction(c) == Sells }

// Buys reports whether the player can sell c here.
func (p *Port) Buys(c goods.Commodity) bool { return p.Direction(c) == Buys }

// Price is the current unit price of c (0 for unknown commodities).
func (p *Port) Price(c goods.Commodity) int {
	if !c.Valid() {
		return 0
	}
	return p.prices[c.Index()]
}

// Level is the current supply level of c.
func (p *Port) Level(c goods.Commodity) int {
	if !c.Valid() {
		return 0
	}
	return p.Levels[c.Index()]
}

func (p *Port) checkTrade(c goods.Commodity, amount int, want Direction) error {
	if err := goods.Check(c); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d: %w", amount, simerr.ErrValidation)
	}
	if p.dirs[c.Index()] != want {
		return fmt.Errorf("%s %s %s, not %s: %w", p.Name, p.dirs[c.Index()], c, want, simerr.ErrInvalidTrade)
	}
	return nil
}

// Buy sells amount units of c from the port to the player.
func (p *Port) Buy(s *ship.Ship, c goods.Commodity, amount int) error {
	if err := p.checkTrade(c, amount, Sells); err != nil {
		return err
	}
	cost := amount * p.Price(c)
	if cost > s.Credits {
		return fmt.Errorf("%d %s cost %d, have %d credits: %w", amount, c, cost, s.Credits, simerr.ErrInsufficient)
	}
	if free := s.FreeHolds(); amount > free {
		return fmt.Errorf("need %d holds, %d free: %w", amount, free, simerr.ErrInsufficient)
	}
	if err := s.SpendCredits(cost); err != nil {
		return err
	}
	if err := s.AddCargo(c, amount); err != nil {
		return err
	}
	p.shift(c, -(amount / 2))
	return nil
}

// Sell buys amount units of c from the player.
func (p *Port) Sell(s *ship.Ship, c goods.Commodity, amount int) error {
	if err := p.checkTrade(c, amount, Buys); err != nil {
		return err
	}
	if held := s.Held(c); held < amount {
		return fmt.Errorf("holding %d %s, selling %d: %w", held, c, amount, simerr.ErrInsufficient)
	}
	p.settleSale(s, c, amount)
	return nil
}

// settleSale performs a sale already validated against direction and cargo.
func (p *Port) settleSale(s *ship.Ship, c goods.Commodity, amount int) int {
	gain := amount * p.Price(c)
	s.Cargo[c.Index()] -= amount
	s.Credits += gain
	p.shift(c, amount/2)
	return gain
}

// BuyMax buys as many units of c as credits and free holds allow.
// It returns 0 without mutating anything when nothing is affordable.
func (p *Port) BuyMax(s *ship.Ship, c goods.Commodity) (int, error) {
	if err := p.checkTrade(c, 1, Sells); err != nil {
		return 0, err
	}
	amount := min(s.Credits/p.Price(c), s.FreeHolds())
	if amount <= 0 {
		return 0, nil
	}
	if err := p.Buy(s, c, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// Quicksell sells the player's whole holding of every commodity this port buys.
// It returns the credits gained, 0 when nothing qualified.
func (p *Port) Quicksell(s *ship.Ship) int {
	total := 0
	for _, c := range goods.All {
		if held := s.Held(c); held > 0 && p.Buys(c) {
			total += p.settleSale(s, c, held)
		}
	}
	return total
}

// shift moves the level of c by delta, clamped to [MinLevel, MaxLevel],
// and reprices.
func (p *Port) shift(c goods.Commodity, delta int) {
	i := c.Index()
	p.Levels[i] = min(MaxLevel, max(MinLevel, p.Levels[i]+delta))
	p.recompute()
}

// Quote is a read-only view of one commodity at a port.
type Quote struct {
	Commodity goods.Commodity
	Direction Direction
	Level     int
	Price     int
}

// Quotes lists every commodity in canonical order.
func (p *Port) Quotes() []Quote {
	out := make([]Quote, 0, goods.Count)
	for _, c := range goods.All {
		out = append(out, Quote{
			Commodity: c,
			Direction: p.dirs[c.Index()],
			Level:     p.Levels[c.Index()],
			Price:     p.prices[c.Index()],
		})
	}
	return out
}
