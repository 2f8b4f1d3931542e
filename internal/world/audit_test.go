package world

import (
	"context"
	"errors"
	"testing"

	"sector-sim/internal/graph"
	"sector-sim/internal/market"
)

func hasProblem(problems []Problem, check string, sector int) bool {
	for _, p := range problems {
		if p.Check == check && p.Sector == sector {
			return true
		}
	}
	return false
}

func TestAudit_GeneratedWorldsAreClean(t *testing.T) {
	for _, n := range []int{1, 2, 5, 30, 100} {
		u, err := graph.Generate(n, 11)
		if err != nil {
			t.Fatal(err)
		}
		if problems := Audit(u); len(problems) != 0 {
			t.Errorf("n=%d: %d problems, first %v", n, len(problems), problems[0])
		}
	}
}

func TestAudit_FindsInjectedFaults(t *testing.T) {
	tests := []struct {
		name   string
		breakU func(u *graph.Universe)
		check  string
		sector int
	}{
		{
			name: "one-way lane",
			breakU: func(u *graph.Universe) {
				s := u.Sector(1)
				s.Neighbors = append(s.Neighbors, 3)
			},
			check:  "lanes",
			sector: 1,
		},
		{
			name: "unknown neighbor",
			breakU: func(u *graph.Universe) {
				u.Sector(2).Neighbors = append(u.Sector(2).Neighbors, 42)
			},
			check:  "sectors",
			sector: 2,
		},
		{
			name: "hub with a port",
			breakU: func(u *graph.Universe) {
				p, _ := market.RestorePort("Hub Market", market.ClassBSS, [3]int{50, 50, 50}, [3]int{40, 30, 80})
				u.Sector(graph.HubID).Port = p
			},
			check:  "kinds",
			sector: graph.HubID,
		},
		{
			name: "isolated sector",
			breakU: func(u *graph.Universe) {
				u.Sector(6).Neighbors = nil
				u.Sector(5).Neighbors = []int{4}
				u.Sector(1).Neighbors = []int{2}
			},
			check:  "connectivity",
			sector: 6,
		},
		{
			name: "port level out of range",
			breakU: func(u *graph.Universe) {
				p, _ := market.RestorePort("Drift", market.ClassSSB, [3]int{50, 50, 50}, [3]int{40, 30, 80})
				p.Levels[0] = 150
				u.Sector(4).Port = p
			},
			check:  "ports",
			sector: 4,
		},
		{
			name: "port with invalid class",
			breakU: func(u *graph.Universe) {
				p, _ := market.RestorePort("Drift", market.ClassSBS, [3]int{50, 50, 50}, [3]int{40, 30, 80})
				p.Class = market.Class(9)
				u.Sector(4).Port = p
			},
			check:  "ports",
			sector: 4,
		},
		{
			name: "negative planet treasury",
			breakU: func(u *graph.Universe) {
				u.Sector(5).Planet = &market.Planet{Name: "Ruin", SectorID: 5, Treasury: -1}
			},
			check:  "planets",
			sector: 5,
		},
		{
			name: "hostile in safe zone",
			breakU: func(u *graph.Universe) {
				u.Sector(2).Kind = graph.Hostile
			},
			check:  "kinds",
			sector: 2,
		},
		{
			name: "unknown kind",
			breakU: func(u *graph.Universe) {
				u.Sector(6).Kind = graph.Kind(99)
			},
			check:  "kinds",
			sector: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := graph.Generate(6, 1)
			if err != nil {
				t.Fatal(err)
			}
			// Strip random lanes and markets so only the injected fault remains.
			clean := graph.NewUniverse(6)
			for id := 1; id <= 6; id++ {
				clean.AddLane(id, id%6+1)
				clean.Sector(id).Kind = u.Sector(id).Kind
				clean.Sector(id).Pirates = u.Sector(id).Pirates
			}
			if problems := Audit(clean); len(problems) != 0 {
				t.Fatalf("baseline has problems: %v", problems)
			}
			tt.breakU(clean)
			problems := Audit(clean)
			if !hasProblem(problems, tt.check, tt.sector) {
				t.Errorf("problems = %v, want %s on sector %d", problems, tt.check, tt.sector)
			}
		})
	}
}

func TestAudit_DanglingNeighborReportedOnce(t *testing.T) {
	u := graph.NewUniverse(3)
	u.AddLane(1, 2)
	u.AddLane(2, 3)
	u.Sector(1).Neighbors = append(u.Sector(1).Neighbors, 9)

	problems := Audit(u)
	if len(problems) != 1 {
		t.Fatalf("problems = %v, want exactly the unknown link", problems)
	}
	if p := problems[0]; p.Check != "sectors" || p.Sector != 1 {
		t.Errorf("problem = %v, want [sectors] on sector 1", p)
	}
}

func TestSweep(t *testing.T) {
	seeds := Seeds(1, 40)
	report, err := Sweep(context.Background(), 50, seeds, 4)
	if err != nil {
		t.Fatal(err)
	}
	if report.Worlds != 40 || len(report.Seeds) != 40 {
		t.Fatalf("Worlds = %d, Seeds = %d; want 40", report.Worlds, len(report.Seeds))
	}
	lanes := 0
	for i, st := range report.Seeds {
		if st.Seed != seeds[i] {
			t.Fatalf("Seeds[%d] = %d, want %d", i, st.Seed, seeds[i])
		}
		if st.Lanes < 50 {
			t.Errorf("seed %d: %d lanes, ring alone has 50", st.Seed, st.Lanes)
		}
		lanes += st.Lanes
	}
	if report.Lanes != lanes {
		t.Errorf("Lanes = %d, sum of seeds = %d", report.Lanes, lanes)
	}
	// max(2, 50/12) hostile sectors per world
	if report.Hostile != 40*4 {
		t.Errorf("Hostile = %d, want %d", report.Hostile, 40*4)
	}
}

func TestSweep_MatchesSequentialGeneration(t *testing.T) {
	seeds := []uint64{5, 9, 5, 12}
	report, err := Sweep(context.Background(), 30, seeds, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, seed := range seeds {
		u, err := graph.Generate(30, seed)
		if err != nil {
			t.Fatal(err)
		}
		st := report.Seeds[i]
		if st.Lanes != u.LaneCount() || st.Ports != len(u.Ports()) || st.Planets != len(u.Planets()) {
			t.Errorf("seed %d: sweep %+v differs from direct generation", seed, st)
		}
	}
}

func TestSweep_Errors(t *testing.T) {
	if _, err := Sweep(context.Background(), 0, Seeds(1, 3), 2); err == nil {
		t.Error("0-sector sweep succeeded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Sweep(ctx, 20, Seeds(1, 10), 2); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled sweep err = %v, want context.Canceled", err)
	}
}

func TestSeeds(t *testing.T) {
	got := Seeds(10, 3)
	if len(got) != 3 || got[0] != 10 || got[2] != 12 {
		t.Errorf("Seeds(10, 3) = %v", got)
	}
	if len(Seeds(1, -1)) != 0 {
		t.Error("negative count should yield no seeds")
	}
}
