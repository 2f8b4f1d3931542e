package world

import (
	"errors"
	"testing"

	"sector-sim/internal/graph"
	"sector-sim/internal/simerr"
)

func docked(t *testing.T) *Session {
	t.Helper()
	s := smallSession(t)
	s.Ship.Location = graph.HubID
	if !s.AtStardock() {
		t.Fatal("sector 3 is not Stardock")
	}
	return s
}

func TestDepositWithdraw(t *testing.T) {
	s := docked(t)
	if err := s.Deposit(400); err != nil {
		t.Fatal(err)
	}
	if s.Ship.Credits != 600 || s.Ship.BankBalance != 400 {
		t.Fatalf("after deposit: credits %d bank %d", s.Ship.Credits, s.Ship.BankBalance)
	}
	if err := s.Deposit(601); !errors.Is(err, simerr.ErrInsufficient) {
		t.Errorf("overdraw deposit err = %v", err)
	}
	if err := s.Withdraw(401); !errors.Is(err, simerr.ErrInsufficient) {
		t.Errorf("overdraw withdraw err = %v", err)
	}
	if err := s.Withdraw(150); err != nil {
		t.Fatal(err)
	}
	if s.Ship.Credits != 750 || s.Ship.BankBalance != 250 {
		t.Errorf("after withdraw: credits %d bank %d", s.Ship.Credits, s.Ship.BankBalance)
	}
	if s.Time != 0 {
		t.Errorf("banking advanced time to %d", s.Time)
	}
}

func TestBank_RejectsBadAmountsWithoutMutation(t *testing.T) {
	tests := []struct {
		name     string
		op       func(*Session) error
		location int
		wantErr  error
	}{
		{"zero deposit", func(s *Session) error { return s.Deposit(0) }, graph.HubID, simerr.ErrValidation},
		{"negative deposit", func(s *Session) error { return s.Deposit(-5) }, graph.HubID, simerr.ErrValidation},
		{"zero withdraw", func(s *Session) error { return s.Withdraw(0) }, graph.HubID, simerr.ErrValidation},
		{"deposit away from hub", func(s *Session) error { return s.Deposit(100) }, 1, simerr.ErrValidation},
		{"withdraw away from hub", func(s *Session) error { return s.Withdraw(100) }, 2, simerr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := smallSession(t)
			s.Ship.Location = tt.location
			s.Ship.BankBalance = 500
			if err := tt.op(s); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if s.Ship.Credits != 1000 || s.Ship.BankBalance != 500 {
				t.Errorf("mutated: credits %d bank %d", s.Ship.Credits, s.Ship.BankBalance)
			}
		})
	}
}

func TestDockRepair(t *testing.T) {
	tests := []struct {
		name      string
		hull      int
		credits   int
		wantPts   int
		wantCost  int
		wantErr   error
		wantTicks int
	}{
		{"full package", 50, 1000, 10, 150, nil, 1},
		{"capped at max hull", 96, 1000, 4, 150, nil, 1},
		{"already full", 100, 1000, 0, 0, nil, 0},
		{"cannot afford", 50, 149, 0, 0, simerr.ErrInsufficient, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := docked(t)
			s.Ship.Hull = tt.hull
			s.Ship.Credits = tt.credits
			pts, cost, err := s.DockRepair()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if pts != tt.wantPts || cost != tt.wantCost {
				t.Errorf("DockRepair = %d pts for %d, want %d for %d", pts, cost, tt.wantPts, tt.wantCost)
			}
			if s.Ship.Hull != tt.hull+pts || s.Ship.Credits != tt.credits-cost {
				t.Errorf("hull %d credits %d", s.Ship.Hull, s.Ship.Credits)
			}
			if s.Time != tt.wantTicks {
				t.Errorf("Time = %d, want %d", s.Time, tt.wantTicks)
			}
		})
	}
}

func TestDockRepair_OnlyAtStardock(t *testing.T) {
	s := smallSession(t)
	s.Ship.Hull = 50
	if _, _, err := s.DockRepair(); !errors.Is(err, simerr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if s.Ship.Hull != 50 || s.Ship.Credits != 1000 {
		t.Error("failed dock repair mutated the ship")
	}
}

func TestExpandHolds(t *testing.T) {
	s := docked(t)
	got, err := s.ExpandHolds()
	if err != nil {
		t.Fatal(err)
	}
	if got != 35 || s.Ship.MaxHolds != 35 || s.Ship.Credits != 700 || s.Time != 1 {
		t.Errorf("after expansion: holds %d credits %d time %d", s.Ship.MaxHolds, s.Ship.Credits, s.Time)
	}

	s.Ship.Credits = 299
	if _, err := s.ExpandHolds(); !errors.Is(err, simerr.ErrInsufficient) {
		t.Errorf("poor expansion err = %v, want ErrInsufficient", err)
	}
	if s.Ship.MaxHolds != 35 || s.Ship.Credits != 299 {
		t.Errorf("failed expansion mutated: holds %d credits %d", s.Ship.MaxHolds, s.Ship.Credits)
	}

	s.Ship.Credits = 1000
	s.Ship.Location = 1
	if _, err := s.ExpandHolds(); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("expansion away from hub err = %v, want ErrValidation", err)
	}
	if s.Ship.MaxHolds != 35 {
		t.Errorf("holds = %d after refused expansion", s.Ship.MaxHolds)
	}
}
