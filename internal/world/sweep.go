package world

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"sector-sim/internal/graph"
	"sector-sim/internal/logger"
	"sector-sim/internal/simerr"
)

// SeedStats summarizes one generated universe.
type SeedStats struct {
	Seed    uint64
	Lanes   int
	Ports   int
	Planets int
	Hostile int
	DeadEnd int
}

// SweepReport aggregates a multi-seed generation run.
type SweepReport struct {
	Sectors  int
	Worlds   int
	Lanes    int
	Ports    int
	Planets  int
	Hostile  int
	DeadEnds int
	Seeds    []SeedStats // in input order
	Elapsed  time.Duration
}

// Sweep generates and audits an n-sector universe for every seed, at most
// workers at a time. Duplicate seeds in flight share one generation. The first
// generation error or audit problem cancels the remaining work and is
// returned.
func Sweep(ctx context.Context, n int, seeds []uint64, workers int) (SweepReport, error) {
	start := time.Now()
	report := SweepReport{Sectors: n}
	if workers < 1 {
		workers = 1
	}

	stats := make([]SeedStats, len(seeds))
	var group singleflight.Group

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err, _ := group.Do(strconv.FormatUint(seed, 10), func() (any, error) {
				return sweepOne(n, seed)
			})
			if err != nil {
				return err
			}
			stats[i] = v.(SeedStats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for _, st := range stats {
		report.Worlds++
		report.Lanes += st.Lanes
		report.Ports += st.Ports
		report.Planets += st.Planets
		report.Hostile += st.Hostile
		report.DeadEnds += st.DeadEnd
	}
	report.Seeds = stats
	report.Elapsed = time.Since(start)
	logger.Debug("Sweep", fmt.Sprintf("%d worlds of %d sectors in %v", report.Worlds, n, report.Elapsed))
	return report, nil
}

func sweepOne(n int, seed uint64) (SeedStats, error) {
	u, err := graph.Generate(n, seed)
	if err != nil {
		return SeedStats{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	if problems := Audit(u); len(problems) > 0 {
		return SeedStats{}, fmt.Errorf("seed %d: %d audit problems, first %s: %w",
			seed, len(problems), problems[0], simerr.ErrInvariant)
	}
	return SeedStats{
		Seed:    seed,
		Lanes:   u.LaneCount(),
		Ports:   len(u.Ports()),
		Planets: len(u.Planets()),
		Hostile: u.CountKind(graph.Hostile),
		DeadEnd: u.CountKind(graph.DeadEnd),
	}, nil
}

// Seeds returns count consecutive seeds starting at first.
func Seeds(first uint64, count int) []uint64 {
	out := make([]uint64, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, first+uint64(i))
	}
	return out
}
