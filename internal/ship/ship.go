package ship

import (
	"fmt"

	"sector-sim/internal/config"
	"sector-sim/internal/goods"
	"sector-sim/internal/simerr"
)

// Ship is the player's vessel and resource container. Every trade, warp and
// combat action mutates it through the methods below, which keep credits,
// fuel and cargo non-negative and cargo within MaxHolds.
type Ship struct {
	Name        string
	Hull        int
	MaxHull     int
	Attack      int
	Defense     int
	MaxHolds    int
	Cargo       [goods.Count]int // indexed by Commodity.Index()
	Credits     int
	BankBalance int
	Fuel        int
	Location    int // current sector ID
}

// New builds a fully repaired ship from its configured loadout.
func New(cfg config.ShipConfig) *Ship {
	return &Ship{
		Name:     cfg.Name,
		Hull:     cfg.MaxHull,
		MaxHull:  cfg.MaxHull,
		Attack:   cfg.Attack,
		Defense:  cfg.Defense,
		MaxHolds: cfg.MaxHolds,
		Credits:  cfg.Credits,
		Fuel:     cfg.Fuel,
		Location: cfg.Location,
	}
}

// UsedHolds is the total quantity of cargo on board.
func (s *Ship) UsedHolds() int {
	total := 0
	for _, q := range s.Cargo {
		total += q
	}
	return total
}

// FreeHolds is the remaining cargo capacity.
func (s *Ship) FreeHolds() int {
	return s.MaxHolds - s.UsedHolds()
}

// Held returns the quantity of c on board (0 for unknown commodities).
func (s *Ship) Held(c goods.Commodity) int {
	if !c.Valid() {
		return 0
	}
	return s.Cargo[c.Index()]
}

// Destroyed reports whether the hull is gone.
func (s *Ship) Destroyed() bool {
	return s.Hull <= 0
}

func checkAmount(what string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s: negative amount %d: %w", what, amount, simerr.ErrValidation)
	}
	return nil
}

// AddCargo loads amount units of c.
func (s *Ship) AddCargo(c goods.Commodity, amount int) error {
	if err := goods.Check(c); err != nil {
		return err
	}
	if err := checkAmount("add cargo", amount); err != nil {
		return err
	}
	if free := s.FreeHolds(); amount > free {
		return fmt.Errorf("need %d holds, %d free: %w", amount, free, simerr.ErrInsufficient)
	}
	s.Cargo[c.Index()] += amount
	return nil
}

// RemoveCargo unloads amount units of c.
func (s *Ship) RemoveCargo(c goods.Commodity, amount int) error {
	if err := goods.Check(c); err != nil {
		return err
	}
	if err := checkAmount("remove cargo", amount); err != nil {
		return err
	}
	if held := s.Cargo[c.Index()]; held < amount {
		return fmt.Errorf("holding %d %s, need %d: %w", held, c, amount, simerr.ErrInsufficient)
	}
	s.Cargo[c.Index()] -= amount
	return nil
}

// SpendCredits debits the wallet.
func (s *Ship) SpendCredits(amount int) error {
	if err := checkAmount("spend credits", amount); err != nil {
		return err
	}
	if s.Credits < amount {
		return fmt.Errorf("have %d credits, need %d: %w", s.Credits, amount, simerr.ErrInsufficient)
	}
	s.Credits -= amount
	return nil
}

// AddCredits credits the wallet.
func (s *Ship) AddCredits(amount int) error {
	if err := checkAmount("add credits", amount); err != nil {
		return err
	}
	s.Credits += amount
	return nil
}

// UseFuel burns amount units of fuel.
func (s *Ship) UseFuel(amount int) error {
	if err := checkAmount("use fuel", amount); err != nil {
		return err
	}
	if s.Fuel < amount {
		return fmt.Errorf("have %d fuel, need %d: %w", s.Fuel, amount, simerr.ErrInsufficient)
	}
	s.Fuel -= amount
	return nil
}

// Refuel adds fuel. The tank has no upper bound.
func (s *Ship) Refuel(amount int) error {
	if err := checkAmount("refuel", amount); err != nil {
		return err
	}
	s.Fuel += amount
	return nil
}

// TakeDamage lowers the hull, never below zero.
func (s *Ship) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	s.Hull = max(0, s.Hull-amount)
}

// Repair restores hull points, never above MaxHull.
func (s *Ship) Repair(amount int) error {
	if err := checkAmount("repair", amount); err != nil {
		return err
	}
	s.Hull = min(s.MaxHull, s.Hull+amount)
	return nil
}

// Validate checks the container invariants; used after loading a save.
func (s *Ship) Validate() error {
	if s.Credits < 0 || s.Fuel < 0 || s.BankBalance < 0 {
		return fmt.Errorf("negative credits/fuel/bank: %w", simerr.ErrValidation)
	}
	for _, q := range s.Cargo {
		if q < 0 {
			return fmt.Errorf("negative cargo: %w", simerr.ErrValidation)
		}
	}
	if s.UsedHolds() > s.MaxHolds {
		return fmt.Errorf("cargo %d exceeds %d holds: %w", s.UsedHolds(), s.MaxHolds, simerr.ErrValidation)
	}
	if s.Hull < 0 || s.Hull > s.MaxHull {
		return fmt.Errorf("hull %d outside 0..%d: %w", s.Hull, s.MaxHull, simerr.ErrValidation)
	}
	return nil
}
