package world

import (
	"fmt"

	"sector-sim/internal/graph"
	"sector-sim/internal/logger"
	"sector-sim/internal/simerr"
)

// AtStardock reports whether the ship is docked at the hub.
func (s *Session) AtStardock() bool {
	return s.Current().Kind == graph.Hub
}

func (s *Session) requireStardock(service string) error {
	if !s.AtStardock() {
		return fmt.Errorf("%s is only at Stardock (sector %d), ship is in %d: %w",
			service, graph.HubID, s.Ship.Location, simerr.ErrValidation)
	}
	return nil
}

// Deposit moves credits from the wallet to the bank.
func (s *Session) Deposit(amount int) error {
	if err := s.requireStardock("bank"); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("deposit %d: %w", amount, simerr.ErrValidation)
	}
	if err := s.Ship.SpendCredits(amount); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	s.Ship.BankBalance += amount
	return nil
}

// Withdraw moves credits from the bank to the wallet.
func (s *Session) Withdraw(amount int) error {
	if err := s.requireStardock("bank"); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("withdraw %d: %w", amount, simerr.ErrValidation)
	}
	if amount > s.Ship.BankBalance {
		return fmt.Errorf("bank holds %d, need %d: %w", s.Ship.BankBalance, amount, simerr.ErrInsufficient)
	}
	s.Ship.BankBalance -= amount
	s.Ship.Credits += amount
	return nil
}

// DockRepair buys one fixed repair package at Stardock. A full hull is not
// charged. It returns the points restored, which may be fewer than the
// package size near MaxHull.
func (s *Session) DockRepair() (points, cost int, err error) {
	if err := s.requireStardock("dock repair"); err != nil {
		return 0, 0, err
	}
	needed := s.Ship.MaxHull - s.Ship.Hull
	if needed <= 0 {
		return 0, 0, nil
	}
	cost = s.Config.Economy.DockRepairCost
	if err := s.Ship.SpendCredits(cost); err != nil {
		return 0, 0, fmt.Errorf("dock repair: %w", err)
	}
	points = min(needed, s.Config.Economy.DockRepairPoints)
	if err := s.Ship.Repair(points); err != nil {
		return 0, 0, err
	}
	s.AdvanceTime()
	logger.Debug("Stardock", fmt.Sprintf("Hull +%d for %d cr", points, cost))
	return points, cost, nil
}

// ExpandHolds buys one cargo bay extension at Stardock and returns the new
// capacity.
func (s *Session) ExpandHolds() (int, error) {
	if err := s.requireStardock("cargo expansion"); err != nil {
		return s.Ship.MaxHolds, err
	}
	if err := s.Ship.SpendCredits(s.Config.Economy.HoldUpgradeCost); err != nil {
		return s.Ship.MaxHolds, fmt.Errorf("expand holds: %w", err)
	}
	s.Ship.MaxHolds += s.Config.Economy.HoldUpgradeSize
	s.AdvanceTime()
	logger.Debug("Stardock", fmt.Sprintf("Holds now %d", s.Ship.MaxHolds))
	return s.Ship.MaxHolds, nil
}
