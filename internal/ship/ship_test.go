package ship

import (
	"errors"
	"testing"

	"sector-sim/internal/config"
	"sector-sim/internal/goods"
	"sector-sim/internal/simerr"
)

func testShip() *Ship {
	return New(config.Default().Ship)
}

func TestNew_FromConfig(t *testing.T) {
	s := testShip()
	if s.Hull != 100 || s.MaxHull != 100 {
		t.Errorf("hull = %d/%d, want 100/100", s.Hull, s.MaxHull)
	}
	if s.FreeHolds() != 30 {
		t.Errorf("FreeHolds = %d, want 30", s.FreeHolds())
	}
	if s.Location != 1 {
		t.Errorf("Location = %d, want 1", s.Location)
	}
}

func TestAddCargo_RespectsCapacity(t *testing.T) {
	s := testShip()
	if err := s.AddCargo(goods.Ore, 25); err != nil {
		t.Fatalf("AddCargo: %v", err)
	}
	err := s.AddCargo(goods.Organics, 6)
	if !errors.Is(err, simerr.ErrInsufficient) {
		t.Fatalf("AddCargo over capacity err = %v, want ErrInsufficient", err)
	}
	if s.UsedHolds() != 25 {
		t.Errorf("UsedHolds = %d, want 25 (failed add must not mutate)", s.UsedHolds())
	}
}

func TestRemoveCargo(t *testing.T) {
	s := testShip()
	s.Cargo[goods.Equipment.Index()] = 4
	if err := s.RemoveCargo(goods.Equipment, 5); !errors.Is(err, simerr.ErrInsufficient) {
		t.Fatalf("remove 5 of 4 err = %v, want ErrInsufficient", err)
	}
	if err := s.RemoveCargo(goods.Equipment, 4); err != nil {
		t.Fatalf("remove 4: %v", err)
	}
	if s.Held(goods.Equipment) != 0 {
		t.Errorf("Held = %d, want 0", s.Held(goods.Equipment))
	}
}

func TestCargo_UnknownCommodity(t *testing.T) {
	s := testShip()
	if err := s.AddCargo(goods.Commodity(7), 1); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("AddCargo(unknown) err = %v, want ErrValidation", err)
	}
	if err := s.RemoveCargo(goods.Commodity(0), 1); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("RemoveCargo(unknown) err = %v, want ErrValidation", err)
	}
}

func TestCredits(t *testing.T) {
	s := testShip()
	if err := s.SpendCredits(1001); !errors.Is(err, simerr.ErrInsufficient) {
		t.Fatalf("overspend err = %v", err)
	}
	if err := s.SpendCredits(-1); !errors.Is(err, simerr.ErrValidation) {
		t.Fatalf("negative spend err = %v", err)
	}
	if err := s.SpendCredits(400); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCredits(50); err != nil {
		t.Fatal(err)
	}
	if s.Credits != 650 {
		t.Errorf("Credits = %d, want 650", s.Credits)
	}
}

func TestFuel(t *testing.T) {
	s := testShip()
	s.Fuel = 1
	if err := s.UseFuel(2); !errors.Is(err, simerr.ErrInsufficient) {
		t.Fatalf("UseFuel(2) err = %v", err)
	}
	if err := s.UseFuel(1); err != nil {
		t.Fatal(err)
	}
	if err := s.Refuel(5); err != nil {
		t.Fatal(err)
	}
	if s.Fuel != 5 {
		t.Errorf("Fuel = %d, want 5", s.Fuel)
	}
}

func TestHull_ClampsBothWays(t *testing.T) {
	s := testShip()
	s.TakeDamage(130)
	if s.Hull != 0 || !s.Destroyed() {
		t.Errorf("hull = %d destroyed=%v, want 0 true", s.Hull, s.Destroyed())
	}
	if err := s.Repair(500); err != nil {
		t.Fatal(err)
	}
	if s.Hull != s.MaxHull {
		t.Errorf("hull after repair = %d, want %d", s.Hull, s.MaxHull)
	}
}

func TestValidate(t *testing.T) {
	s := testShip()
	if err := s.Validate(); err != nil {
		t.Fatalf("fresh ship invalid: %v", err)
	}
	s.Cargo[0] = 31
	if err := s.Validate(); !errors.Is(err, simerr.ErrValidation) {
		t.Errorf("overfull ship err = %v, want ErrValidation", err)
	}
}
