package market

import (
	"fmt"

	"sector-sim/internal/goods"
	"sector-sim/internal/rng"
	"sector-sim/internal/simerr"
)

// Planet is a resource container in a sector: stored goods, a credit
// treasury, and a per-tick production rate for each commodity.
type Planet struct {
	Name       string
	SectorID   int
	Goods      [goods.Count]int
	Treasury   int
	Production [goods.Count]int
}

// NewPlanet names a fresh planet for sectorID. It starts empty and
// produces one unit of each commodity per tick.
func NewPlanet(r rng.Source, sectorID int) *Planet {
	return &Planet{
		Name:       randomName(r, planetPrefixes, planetSuffixes),
		SectorID:   sectorID,
		Production: [goods.Count]int{1, 1, 1},
	}
}

// ProductionTick adds one turn of production to the stored goods.
func (p *Planet) ProductionTick() {
	for i, rate := range p.Production {
		p.Goods[i] += rate
	}
}

func positive(what string, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%s: amount must be positive, got %d: %w", what, amount, simerr.ErrValidation)
	}
	return nil
}

// Deposit stores amount units of c on the planet.
func (p *Planet) Deposit(c goods.Commodity, amount int) error {
	if err := goods.Check(c); err != nil {
		return err
	}
	if err := positive("deposit", amount); err != nil {
		return err
	}
	p.Goods[c.Index()] += amount
	return nil
}

// Withdraw removes amount units of c from the planet.
func (p *Planet) Withdraw(c goods.Commodity, amount int) error {
	if err := goods.Check(c); err != nil {
		return err
	}
	if err := positive("withdraw", amount); err != nil {
		return err
	}
	if have := p.Goods[c.Index()]; have < amount {
		return fmt.Errorf("%s stores %d %s, need %d: %w", p.Name, have, c, amount, simerr.ErrInsufficient)
	}
	p.Goods[c.Index()] -= amount
	return nil
}

// DepositCredits adds to the treasury.
func (p *Planet) DepositCredits(amount int) error {
	if err := positive("deposit credits", amount); err != nil {
		return err
	}
	p.Treasury += amount
	return nil
}

// WithdrawCredits takes from the treasury.
func (p *Planet) WithdrawCredits(amount int) error {
	if err := positive("withdraw credits", amount); err != nil {
		return err
	}
	if p.Treasury < amount {
		return fmt.Errorf("treasury holds %d, need %d: %w", p.Treasury, amount, simerr.ErrInsufficient)
	}
	p.Treasury -= amount
	return nil
}
