// Package world applies turn rules on top of the core packages: movement
// with fuel, waiting, repairs, pirate encounters, planet production and
// daily bank interest, plus the Stardock services at the hub and cargo
// transfers with planets.
package world

import (
	"fmt"
	"math"

	"sector-sim/internal/combat"
	"sector-sim/internal/config"
	"sector-sim/internal/engine"
	"sector-sim/internal/graph"
	"sector-sim/internal/logger"
	"sector-sim/internal/market"
	"sector-sim/internal/rng"
	"sector-sim/internal/ship"
	"sector-sim/internal/simerr"
)

const (
	// TicksPerDay is how many actions make one in-game day.
	TicksPerDay = 20
	// WinCredits is the wallet balance that ends the game in the player's favor.
	WinCredits = 5_000_000

	fuelRegenLo = 3
	fuelRegenHi = 8
)

// Session is one player in one universe.
type Session struct {
	Config   *config.Config
	Universe *graph.Universe
	Ship     *ship.Ship
	Time     int // actions taken
	Day      int

	r rng.Source
}

// Snapshot is the persisted state of a session.
type Snapshot struct {
	Seed     uint64
	Time     int
	Day      int
	Universe *graph.Universe
	Ship     *ship.Ship
}

// NewSession generates a universe from cfg and places a fresh ship in it.
// Every random choice of the session, generation included, is drawn from r.
func NewSession(cfg *config.Config, r rng.Source) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := graph.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	u, err := graph.GenerateWith(cfg.Sectors, r, opts)
	if err != nil {
		return nil, err
	}
	s := ship.New(cfg.Ship)
	if u.Sector(s.Location) == nil {
		return nil, fmt.Errorf("start sector %d not in %d-sector universe: %w", s.Location, u.Len(), simerr.ErrValidation)
	}
	logger.Debug("Session", fmt.Sprintf("New session: %s in sector %d", s.Name, s.Location))
	return &Session{Config: cfg, Universe: u, Ship: s, r: r}, nil
}

// Resume rebuilds a session from a snapshot after re-checking its invariants.
func Resume(cfg *config.Config, snap *Snapshot, r rng.Source) (*Session, error) {
	if snap == nil || snap.Universe == nil || snap.Ship == nil {
		return nil, fmt.Errorf("resume: incomplete snapshot: %w", simerr.ErrValidation)
	}
	if err := snap.Universe.Validate(); err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	if err := snap.Ship.Validate(); err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	if snap.Universe.Sector(snap.Ship.Location) == nil {
		return nil, fmt.Errorf("resume: ship in unknown sector %d: %w", snap.Ship.Location, simerr.ErrValidation)
	}
	return &Session{
		Config:   cfg,
		Universe: snap.Universe,
		Ship:     snap.Ship,
		Time:     snap.Time,
		Day:      snap.Day,
		r:        r,
	}, nil
}

// Snapshot captures the session for persistence. The universe and ship are
// shared, not copied.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Seed:     s.Config.Seed,
		Time:     s.Time,
		Day:      s.Day,
		Universe: s.Universe,
		Ship:     s.Ship,
	}
}

// Current is the sector the ship is in.
func (s *Session) Current() *graph.Sector {
	return s.Universe.Sector(s.Ship.Location)
}

// Port is the port in the current sector, or nil.
func (s *Session) Port() *market.Port {
	return s.Current().Port
}

// Won reports whether the wallet has reached WinCredits.
func (s *Session) Won() bool {
	return s.Ship.Credits >= WinCredits
}

func (s *Session) checkAlive() error {
	if s.Ship.Destroyed() {
		return fmt.Errorf("ship destroyed: %w", simerr.ErrValidation)
	}
	return nil
}

// Warp moves the ship one lane, burning one unit of fuel.
func (s *Session) Warp(dest int) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	if !s.Current().Adjacent(dest) {
		return fmt.Errorf("sector %d is not connected to %d: %w", dest, s.Ship.Location, simerr.ErrValidation)
	}
	if err := s.Ship.UseFuel(1); err != nil {
		return fmt.Errorf("warp to %d: %w", dest, err)
	}
	s.Ship.Location = dest
	s.AdvanceTime()
	return nil
}

// Wait drifts for one action and regenerates 3 to 8 units of fuel.
func (s *Session) Wait() int {
	gained := rng.Between(s.r, fuelRegenLo, fuelRegenHi)
	// gained is always positive
	_ = s.Ship.Refuel(gained)
	s.AdvanceTime()
	return gained
}

// Repair buys as much hull as the wallet allows at the current port.
// It returns the points restored and credits spent.
func (s *Session) Repair() (points, cost int, err error) {
	if s.Port() == nil {
		return 0, 0, fmt.Errorf("no port in sector %d: %w", s.Ship.Location, simerr.ErrValidation)
	}
	needed := s.Ship.MaxHull - s.Ship.Hull
	if needed <= 0 {
		return 0, 0, nil
	}
	per := s.Config.Economy.RepairCost
	points = min(needed, s.Ship.Credits/per)
	if points <= 0 {
		return 0, 0, fmt.Errorf("repair costs %d per point, have %d credits: %w", per, s.Ship.Credits, simerr.ErrInsufficient)
	}
	cost = points * per
	if err := s.Ship.SpendCredits(cost); err != nil {
		return 0, 0, err
	}
	if err := s.Ship.Repair(points); err != nil {
		return 0, 0, err
	}
	s.AdvanceTime()
	return points, cost, nil
}

// Encounter rolls for a pirate attack in the current sector. It returns nil
// when the sector has no pirates or the roll misses. Winning clears the
// sector's pirates.
func (s *Session) Encounter() (*combat.Outcome, error) {
	sec := s.Current()
	if !sec.Pirates || s.Ship.Destroyed() {
		return nil, nil
	}
	if !rng.Chance(s.r, s.Config.Combat.EncounterChance) {
		return nil, nil
	}
	out, err := combat.Engage(s.Ship, s.r)
	if err != nil {
		return nil, err
	}
	if out.Result == combat.Win {
		sec.Pirates = false
	}
	logger.Debug("Session", fmt.Sprintf("Encounter in sector %d: %s", sec.ID, out.Result))
	return &out, nil
}

// AdvanceTime ends one action: planets produce, and every TicksPerDay
// actions a day passes and bank interest is paid.
func (s *Session) AdvanceTime() {
	s.Time++
	for _, p := range s.Universe.Planets() {
		p.ProductionTick()
	}
	if s.Time%TicksPerDay == 0 {
		s.Day++
		s.applyInterest()
	}
}

// applyInterest adds floor(balance * rate) to a positive bank balance.
// The rate is applied in basis points so the result is exact.
func (s *Session) applyInterest() int {
	balance := s.Ship.BankBalance
	if balance <= 0 {
		return 0
	}
	bps := int(math.Round(s.Config.Economy.InterestRate * 10000))
	interest := balance * bps / 10000
	if interest <= 0 {
		return 0
	}
	s.Ship.BankBalance += interest
	logger.Debug("Bank", fmt.Sprintf("Day %d interest +%d (balance %d)", s.Day, interest, s.Ship.BankBalance))
	return interest
}

// Recommend runs the route optimizer against every port in the universe.
func (s *Session) Recommend() (*engine.Recommendation, bool) {
	return engine.BestRoute(s.Universe, s.Universe.Ports(), s.Ship)
}
