package graph

import (
	"fmt"

	"sector-sim/internal/config"
	"sector-sim/internal/goods"
	"sector-sim/internal/logger"
	"sector-sim/internal/market"
	"sector-sim/internal/rng"
	"sector-sim/internal/simerr"
)

const (
	// HubID is the sector that is always tagged Hub and never has a port.
	HubID = 3
	// SafeZoneCount is how many low-numbered sectors are safe zones.
	SafeZoneCount = 5
)

// Options tunes generation. Use DefaultOptions or OptionsFromConfig.
type Options struct {
	// ExtraLanes is the number of random lane attempts after the ring;
	// negative selects max(3, n/6).
	ExtraLanes   int
	PortChance   float64
	PlanetChance float64
	BasePrices   [goods.Count]int
}

// DefaultOptions matches the classic layout: 40% ports, 20% planets.
func DefaultOptions() Options {
	return Options{
		ExtraLanes:   -1,
		PortChance:   0.4,
		PlanetChance: 0.2,
		BasePrices:   goods.DefaultBasePrices,
	}
}

// OptionsFromConfig derives generation options from the loaded config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	prices, err := cfg.BasePrices()
	if err != nil {
		return Options{}, err
	}
	return Options{
		ExtraLanes:   cfg.ExtraLanes,
		PortChance:   cfg.Economy.PortChance,
		PlanetChance: cfg.Economy.PlanetChance,
		BasePrices:   prices,
	}, nil
}

// Generate builds an n-sector universe from seed with default options.
func Generate(n int, seed uint64) (*Universe, error) {
	return GenerateWith(n, rng.New(seed), DefaultOptions())
}

// GenerateWith builds an n-sector universe drawing every random choice from r.
// The result is validated before it is returned; a structural failure is an
// ErrInvariant error and no universe is returned.
func GenerateWith(n int, r rng.Source, opts Options) (*Universe, error) {
	if n < 1 {
		return nil, fmt.Errorf("generate %d sectors: %w", n, simerr.ErrValidation)
	}
	u := NewUniverse(n)

	// Ring backbone: every sector reachable before any random lane exists.
	for id := 1; id <= n; id++ {
		if _, err := u.AddLane(id, id%n+1); err != nil {
			return nil, err
		}
	}

	extra := opts.ExtraLanes
	if extra < 0 {
		extra = max(3, n/6)
	}
	for i := 0; i < extra; i++ {
		a := rng.Between(r, 1, n)
		b := rng.Between(r, 1, n)
		if _, err := u.AddLane(a, b); err != nil {
			return nil, err
		}
	}

	u.assignKinds(r)

	if err := u.populate(r, opts); err != nil {
		return nil, err
	}

	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	logger.Debug("Universe", fmt.Sprintf("Generated %d sectors, %d lanes, %d ports, %d hostile",
		u.Len(), u.LaneCount(), len(u.Ports()), u.CountKind(Hostile)))
	return u, nil
}

// assignKinds tags safe zones, the hub, hostile sectors and dead ends.
func (u *Universe) assignKinds(r rng.Source) {
	n := u.Len()
	for id := 1; id <= min(SafeZoneCount, n); id++ {
		u.Sectors[id].Kind = SafeZone
	}
	if hub := u.Sectors[HubID]; hub != nil {
		hub.Kind = Hub
	}

	var candidates []int
	for _, id := range u.IDs() {
		if u.Sectors[id].Kind == Normal {
			candidates = append(candidates, id)
		}
	}
	rng.Shuffle(r, candidates)
	hostile := min(max(2, n/12), len(candidates))
	for _, id := range candidates[:hostile] {
		s := u.Sectors[id]
		s.Kind = Hostile
		s.Pirates = true
	}

	for _, s := range u.Sectors {
		if s.Kind == Normal && len(s.Neighbors) == 1 {
			s.Kind = DeadEnd
		}
	}
}

// populate places ports and planets in ascending sector order.
func (u *Universe) populate(r rng.Source, opts Options) error {
	for _, id := range u.IDs() {
		s := u.Sectors[id]
		if s.Kind == Hub {
			continue
		}
		if rng.Chance(r, opts.PortChance) {
			p, err := market.NewPort(r, market.PortSpec{Base: opts.BasePrices})
			if err != nil {
				return fmt.Errorf("sector %d port: %w", id, err)
			}
			s.Port = p
		}
		if rng.Chance(r, opts.PlanetChance) {
			s.Planet = market.NewPlanet(r, id)
		}
	}
	return nil
}
