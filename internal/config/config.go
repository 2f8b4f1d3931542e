package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sector-sim/internal/goods"
)

// ShipConfig is the starting loadout of the player ship.
type ShipConfig struct {
	Name     string `yaml:"name" json:"name"`
	MaxHull  int    `yaml:"max_hull" json:"max_hull"`
	Attack   int    `yaml:"attack" json:"attack"`
	Defense  int    `yaml:"defense" json:"defense"`
	MaxHolds int    `yaml:"max_holds" json:"max_holds"`
	Credits  int    `yaml:"credits" json:"credits"`
	Fuel     int    `yaml:"fuel" json:"fuel"`
	Location int    `yaml:"location" json:"location"`
}

// EconomyConfig tunes port and planet placement and base prices.
type EconomyConfig struct {
	PortChance   float64        `yaml:"port_chance" json:"port_chance"`
	PlanetChance float64        `yaml:"planet_chance" json:"planet_chance"`
	BasePrices   map[string]int `yaml:"base_prices" json:"base_prices"` // commodity name -> base price
	RepairCost   int            `yaml:"repair_cost" json:"repair_cost"` // credits per hull point
	InterestRate float64        `yaml:"interest_rate" json:"interest_rate"`

	// Stardock services at the hub.
	DockRepairCost   int `yaml:"dock_repair_cost" json:"dock_repair_cost"`     // credits per visit
	DockRepairPoints int `yaml:"dock_repair_points" json:"dock_repair_points"` // hull restored per visit
	HoldUpgradeCost  int `yaml:"hold_upgrade_cost" json:"hold_upgrade_cost"`
	HoldUpgradeSize  int `yaml:"hold_upgrade_size" json:"hold_upgrade_size"`
}

// CombatConfig tunes pirate encounters.
type CombatConfig struct {
	EncounterChance float64 `yaml:"encounter_chance" json:"encounter_chance"`
}

// Config holds generation and gameplay settings (in-memory representation).
// Load reads it from YAML; sessions are persisted by internal/db.
type Config struct {
	Sectors    int           `yaml:"sectors" json:"sectors"`
	Seed       uint64        `yaml:"seed" json:"seed"`
	ExtraLanes int           `yaml:"extra_lanes" json:"extra_lanes"` // < 0 = max(3, n/6)
	DBPath     string        `yaml:"db_path" json:"db_path"`
	Ship       ShipConfig    `yaml:"ship" json:"ship"`
	Economy    EconomyConfig `yaml:"economy" json:"economy"`
	Combat     CombatConfig  `yaml:"combat" json:"combat"`
}

// Default returns a Config with the classic 100-sector layout.
func Default() *Config {
	return &Config{
		Sectors:    100,
		Seed:       1,
		ExtraLanes: -1,
		DBPath:     "sectors.db",
		Ship: ShipConfig{
			Name:     "GodSpeed II",
			MaxHull:  100,
			Attack:   10,
			Defense:  5,
			MaxHolds: 30,
			Credits:  1000,
			Fuel:     300,
			Location: 1,
		},
		Economy: EconomyConfig{
			PortChance:   0.4,
			PlanetChance: 0.2,
			BasePrices: map[string]int{
				"ore":       40,
				"organics":  30,
				"equipment": 80,
			},
			RepairCost:       5,
			InterestRate:     0.005,
			DockRepairCost:   150,
			DockRepairPoints: 10,
			HoldUpgradeCost:  300,
			HoldUpgradeSize:  5,
		},
		Combat: CombatConfig{
			EncounterChance: 0.4,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Sectors < 1 {
		return fmt.Errorf("sectors must be >= 1, got %d", c.Sectors)
	}
	if c.Ship.Location < 1 || c.Ship.Location > c.Sectors {
		return fmt.Errorf("ship location %d outside 1..%d", c.Ship.Location, c.Sectors)
	}
	if c.Ship.MaxHull <= 0 || c.Ship.MaxHolds < 0 || c.Ship.Credits < 0 || c.Ship.Fuel < 0 {
		return fmt.Errorf("ship stats must be non-negative with positive hull")
	}
	if c.Ship.Attack < 0 || c.Ship.Defense < 0 {
		return fmt.Errorf("ship attack/defense must be non-negative")
	}
	for _, p := range []float64{c.Economy.PortChance, c.Economy.PlanetChance, c.Combat.EncounterChance} {
		if p < 0 || p > 1 {
			return fmt.Errorf("probability %v outside [0,1]", p)
		}
	}
	if c.Economy.RepairCost <= 0 {
		return fmt.Errorf("repair_cost must be positive")
	}
	if c.Economy.DockRepairCost <= 0 || c.Economy.DockRepairPoints <= 0 ||
		c.Economy.HoldUpgradeCost <= 0 || c.Economy.HoldUpgradeSize <= 0 {
		return fmt.Errorf("stardock prices and sizes must be positive")
	}
	if c.Economy.InterestRate < 0 {
		return fmt.Errorf("interest_rate must be non-negative")
	}
	if _, err := c.BasePrices(); err != nil {
		return err
	}
	return nil
}

// BasePrices resolves the name-keyed price table into commodity order.
// Commodities missing from the table keep their default price.
func (c *Config) BasePrices() ([goods.Count]int, error) {
	out := goods.DefaultBasePrices
	for name, price := range c.Economy.BasePrices {
		com, err := goods.Parse(name)
		if err != nil {
			return out, fmt.Errorf("base_prices: %w", err)
		}
		if price <= 0 {
			return out, fmt.Errorf("base price for %s must be positive, got %d", com, price)
		}
		out[com.Index()] = price
	}
	return out, nil
}
