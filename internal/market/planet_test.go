package market

import (
	"errors"
	"testing"

	"sector-sim/internal/goods"
	"sector-sim/internal/rng"
	"sector-sim/internal/simerr"
)

func TestPlanet_ProductionAndStorage(t *testing.T) {
	p := NewPlanet(rng.New(5), 12)
	if p.SectorID != 12 || p.Name == "" {
		t.Fatalf("planet = %+v", p)
	}
	p.ProductionTick()
	p.ProductionTick()
	if p.Goods != [goods.Count]int{2, 2, 2} {
		t.Errorf("Goods after 2 ticks = %v, want [2 2 2]", p.Goods)
	}

	if err := p.Deposit(goods.Ore, 10); err != nil {
		t.Fatal(err)
	}
	if err := p.Withdraw(goods.Ore, 13); !errors.Is(err, simerr.ErrInsufficient) {
		t.Errorf("overdraw err = %v, want ErrInsufficient", err)
	}
	if err := p.Withdraw(goods.Ore, 12); err != nil {
		t.Fatal(err)
	}
	if err := p.Deposit(goods.Ore, 0); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("zero deposit err = %v, want ErrValidation", err)
	}
	if err := p.Deposit(goods.Commodity(4), 1); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("unknown commodity err = %v, want ErrValidation", err)
	}
}

func TestPlanet_Treasury(t *testing.T) {
	p := NewPlanet(rng.New(5), 1)
	if err := p.DepositCredits(300); err != nil {
		t.Fatal(err)
	}
	if err := p.WithdrawCredits(301); !errors.Is(err, simerr.ErrInsufficient) {
		t.Errorf("overdraw err = %v", err)
	}
	if err := p.WithdrawCredits(-5); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("negative withdraw err = %v", err)
	}
	if err := p.WithdrawCredits(300); err != nil {
		t.Fatal(err)
	}
	if p.Treasury != 0 {
		t.Errorf("Treasury = %d, want 0", p.Treasury)
	}
}
