package world

import (
	"fmt"

	"sector-sim/internal/goods"
	"sector-sim/internal/market"
	"sector-sim/internal/simerr"
)

// Planet is the planet in the current sector, or nil.
func (s *Session) Planet() *market.Planet {
	return s.Current().Planet
}

// landed checks that a transfer of amount can happen at all: there is a
// planet here and the amount is positive.
func (s *Session) landed(op string, amount int) (*market.Planet, error) {
	p := s.Planet()
	if p == nil {
		return nil, fmt.Errorf("%s: no planet in sector %d: %w", op, s.Ship.Location, simerr.ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%s: amount must be positive, got %d: %w", op, amount, simerr.ErrValidation)
	}
	return p, nil
}

// PlanetDeposit unloads amount units of c from the ship onto the planet.
func (s *Session) PlanetDeposit(c goods.Commodity, amount int) error {
	p, err := s.landed("planet deposit", amount)
	if err != nil {
		return err
	}
	if err := s.Ship.RemoveCargo(c, amount); err != nil {
		return fmt.Errorf("planet deposit: %w", err)
	}
	// Both checks passed above, so the planet side cannot fail.
	_ = p.Deposit(c, amount)
	return nil
}

// PlanetWithdraw loads amount units of c from the planet into the ship.
func (s *Session) PlanetWithdraw(c goods.Commodity, amount int) error {
	p, err := s.landed("planet withdraw", amount)
	if err != nil {
		return err
	}
	if err := goods.Check(c); err != nil {
		return err
	}
	if free := s.Ship.FreeHolds(); amount > free {
		return fmt.Errorf("planet withdraw: need %d holds, %d free: %w", amount, free, simerr.ErrInsufficient)
	}
	if err := p.Withdraw(c, amount); err != nil {
		return fmt.Errorf("planet withdraw: %w", err)
	}
	_ = s.Ship.AddCargo(c, amount)
	return nil
}

// PlanetDepositCredits moves credits from the wallet into the treasury.
func (s *Session) PlanetDepositCredits(amount int) error {
	p, err := s.landed("treasury deposit", amount)
	if err != nil {
		return err
	}
	if err := s.Ship.SpendCredits(amount); err != nil {
		return fmt.Errorf("treasury deposit: %w", err)
	}
	_ = p.DepositCredits(amount)
	return nil
}

// PlanetWithdrawCredits moves credits from the treasury into the wallet.
func (s *Session) PlanetWithdrawCredits(amount int) error {
	p, err := s.landed("treasury withdraw", amount)
	if err != nil {
		return err
	}
	if err := p.WithdrawCredits(amount); err != nil {
		return fmt.Errorf("treasury withdraw: %w", err)
	}
	_ = s.Ship.AddCredits(amount)
	return nil
}
