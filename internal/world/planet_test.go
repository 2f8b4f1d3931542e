package world

import (
	"errors"
	"testing"

	"sector-sim/internal/goods"
	"sector-sim/internal/simerr"
)

// landedSession puts the ship on Terra with 10 ore aboard and stocks the
// planet with 8 organics and a 500 credit treasury.
func landedSession(t *testing.T) *Session {
	t.Helper()
	s := smallSession(t)
	s.Ship.Location = 2
	s.Ship.Cargo[goods.Ore.Index()] = 10
	p := s.Planet()
	p.Goods[goods.Organics.Index()] = 8
	p.Treasury = 500
	return s
}

func TestPlanetTransfers(t *testing.T) {
	s := landedSession(t)
	p := s.Planet()

	if err := s.PlanetDeposit(goods.Ore, 6); err != nil {
		t.Fatal(err)
	}
	if s.Ship.Held(goods.Ore) != 4 || p.Goods[goods.Ore.Index()] != 6 {
		t.Errorf("after deposit: ship ore %d planet ore %d", s.Ship.Held(goods.Ore), p.Goods[goods.Ore.Index()])
	}

	if err := s.PlanetWithdraw(goods.Organics, 5); err != nil {
		t.Fatal(err)
	}
	if s.Ship.Held(goods.Organics) != 5 || p.Goods[goods.Organics.Index()] != 3 {
		t.Errorf("after withdraw: ship organics %d planet organics %d",
			s.Ship.Held(goods.Organics), p.Goods[goods.Organics.Index()])
	}

	if err := s.PlanetDepositCredits(250); err != nil {
		t.Fatal(err)
	}
	if s.Ship.Credits != 750 || p.Treasury != 750 {
		t.Errorf("after credit deposit: wallet %d treasury %d", s.Ship.Credits, p.Treasury)
	}

	if err := s.PlanetWithdrawCredits(700); err != nil {
		t.Fatal(err)
	}
	if s.Ship.Credits != 1450 || p.Treasury != 50 {
		t.Errorf("after credit withdraw: wallet %d treasury %d", s.Ship.Credits, p.Treasury)
	}
	if s.Time != 0 {
		t.Errorf("transfers advanced time to %d", s.Time)
	}
}

func TestPlanetTransfers_FailWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		op      func(*Session) error
		setup   func(*Session)
		wantErr error
	}{
		{"deposit more than held", func(s *Session) error { return s.PlanetDeposit(goods.Ore, 11) }, nil, simerr.ErrInsufficient},
		{"deposit zero", func(s *Session) error { return s.PlanetDeposit(goods.Ore, 0) }, nil, simerr.ErrValidation},
		{"deposit unknown commodity", func(s *Session) error { return s.PlanetDeposit(goods.Commodity(7), 1) }, nil, simerr.ErrValidation},
		{"withdraw more than stored", func(s *Session) error { return s.PlanetWithdraw(goods.Organics, 9) }, nil, simerr.ErrInsufficient},
		{"withdraw beyond free holds", func(s *Session) error { return s.PlanetWithdraw(goods.Organics, 8) },
			func(s *Session) { s.Ship.MaxHolds = 15 }, simerr.ErrInsufficient},
		{"withdraw negative", func(s *Session) error { return s.PlanetWithdraw(goods.Organics, -1) }, nil, simerr.ErrValidation},
		{"credits beyond wallet", func(s *Session) error { return s.PlanetDepositCredits(1001) }, nil, simerr.ErrInsufficient},
		{"credits beyond treasury", func(s *Session) error { return s.PlanetWithdrawCredits(501) }, nil, simerr.ErrInsufficient},
		{"zero credits", func(s *Session) error { return s.PlanetWithdrawCredits(0) }, nil, simerr.ErrValidation},
		{"no planet here", func(s *Session) error { return s.PlanetDeposit(goods.Ore, 1) },
			func(s *Session) { s.Ship.Location = 1 }, simerr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := landedSession(t)
			if tt.setup != nil {
				tt.setup(s)
			}
			p := s.Universe.Sector(2).Planet
			shipBefore, planetBefore := *s.Ship, *p
			if err := tt.op(s); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if *s.Ship != shipBefore {
				t.Errorf("ship mutated: %+v, was %+v", *s.Ship, shipBefore)
			}
			if *p != planetBefore {
				t.Errorf("planet mutated: %+v, was %+v", *p, planetBefore)
			}
		})
	}
}
