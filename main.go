package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/joho/godotenv"

	"sector-sim/internal/config"
	"sector-sim/internal/db"
	"sector-sim/internal/engine"
	"sector-sim/internal/logger"
	"sector-sim/internal/rng"
	"sector-sim/internal/world"
)

var version = "dev"

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	logger.Init()

	configPath := flag.String("config", envOrDefault("SECTORSIM_CONFIG", "sectorsim.yaml"), "YAML config file")
	sectors := flag.Int("sectors", 0, "number of sectors (overrides config)")
	seed := flag.Uint64("seed", 0, "generation seed (overrides config)")
	dbPath := flag.String("db", envOrDefault("SECTORSIM_DB", ""), "SQLite save file (overrides config)")
	load := flag.String("load", "", "resume the save with this id")
	name := flag.String("name", "autosave", "name for the new save")
	sweep := flag.Int("sweep", 0, "generate and audit this many consecutive seeds, then exit")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel generators for -sweep")
	list := flag.Bool("list", false, "list saves and exit")
	flag.Parse()

	logger.Banner(version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Config", fmt.Sprintf("Failed to load %s: %v", *configPath, err))
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sectors":
			cfg.Sectors = *sectors
		case "seed":
			cfg.Seed = *seed
		}
	})
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Config", fmt.Sprintf("Invalid config: %v", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *sweep > 0 {
		if err := runSweep(ctx, cfg, *sweep, *workers); err != nil {
			logger.Error("Sweep", err.Error())
			os.Exit(1)
		}
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	if *list {
		if err := listSaves(database); err != nil {
			logger.Error("DB", err.Error())
			os.Exit(1)
		}
		return
	}

	session, err := openSession(database, cfg, *load)
	if err != nil {
		logger.Error("Session", err.Error())
		os.Exit(1)
	}

	if problems := world.Audit(session.Universe); len(problems) > 0 {
		for _, p := range problems {
			logger.Warn("Audit", p.String())
		}
		logger.Error("Audit", fmt.Sprintf("%d problems found", len(problems)))
		os.Exit(1)
	}
	logger.Success("Audit", "Universe OK")

	printStatus(session)
	printMarket(session)
	printRoute(session)

	id, err := database.SaveSession(*name, session.Snapshot())
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Save failed: %v", err))
		os.Exit(1)
	}
	logger.Success("DB", fmt.Sprintf("Saved as %s (resume with -load %s)", *name, id))
}

func openSession(database *db.DB, cfg *config.Config, loadID string) (*world.Session, error) {
	if loadID == "" {
		s, err := world.NewSession(cfg, rng.New(cfg.Seed))
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		logger.Success("Universe", fmt.Sprintf("Generated %d sectors from seed %d", s.Universe.Len(), cfg.Seed))
		return s, nil
	}
	snap, err := database.LoadSession(loadID)
	if err != nil {
		return nil, err
	}
	cfg.Seed = snap.Seed
	cfg.Sectors = snap.Universe.Len()
	// Continue the random stream past what the saved turns consumed.
	return world.Resume(cfg, snap, rng.New(snap.Seed+uint64(snap.Time)+1))
}

func runSweep(ctx context.Context, cfg *config.Config, count, workers int) error {
	report, err := world.Sweep(ctx, cfg.Sectors, world.Seeds(cfg.Seed, count), workers)
	if err != nil {
		return err
	}
	logger.Section(fmt.Sprintf("Sweep: %d worlds of %d sectors", report.Worlds, report.Sectors))
	logger.Stats("Lanes", report.Lanes)
	logger.Stats("Ports", report.Ports)
	logger.Stats("Planets", report.Planets)
	logger.Stats("Hostile", report.Hostile)
	logger.Stats("Dead ends", report.DeadEnds)
	logger.Stats("Elapsed", report.Elapsed)
	logger.Success("Sweep", "All worlds passed audit")
	return nil
}

func listSaves(database *db.DB) error {
	saves, err := database.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		logger.Info("DB", "No saves")
		return nil
	}
	logger.Section(fmt.Sprintf("%d saves", len(saves)))
	for _, s := range saves {
		logger.Info("Save", fmt.Sprintf("%s  %-12s seed=%d sectors=%d day=%d  %s",
			s.ID, s.Name, s.Seed, s.Sectors, s.Day, s.CreatedAt.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

func printStatus(s *world.Session) {
	sh := s.Ship
	logger.Section(sh.Name)
	logger.Stats("Sector", s.Ship.Location)
	logger.Stats("Hull", fmt.Sprintf("%d/%d", sh.Hull, sh.MaxHull))
	logger.Stats("Credits", sh.Credits)
	logger.Stats("Bank", sh.BankBalance)
	logger.Stats("Fuel", sh.Fuel)
	logger.Stats("Holds", fmt.Sprintf("%d/%d", sh.UsedHolds(), sh.MaxHolds))
	logger.Stats("Day", s.Day)
}

func printMarket(s *world.Session) {
	rows := engine.MarketReport(s.Universe)
	logger.Section(fmt.Sprintf("Market report (%d ports)", len(rows)))
	for _, row := range rows {
		parts := make([]string, 0, len(row.Quotes))
		for _, q := range row.Quotes {
			parts = append(parts, fmt.Sprintf("%s %s @ %d", q.Commodity, q.Direction, q.Price))
		}
		logger.Info("Market", fmt.Sprintf("Sector %3d [%s] %-24s %s", row.Sector, row.Class, row.Name, strings.Join(parts, ", ")))
	}
}

func printRoute(s *world.Session) {
	rec, ok := s.Recommend()
	if !ok {
		logger.Info("Route", "No profitable route")
		return
	}
	logger.Section("Best route")
	logger.Stats("Buy", fmt.Sprintf("%s at sector %d for %d", rec.Commodity, rec.FromSector, rec.BuyPrice))
	logger.Stats("Sell", fmt.Sprintf("at sector %d for %d", rec.ToSector, rec.SellPrice))
	logger.Stats("Profit/unit", rec.ProfitPerUnit)
	logger.Stats("Jumps", rec.Jumps)
	logger.Stats("Score", fmt.Sprintf("%.2f", rec.Score))
	logger.Stats("Units", rec.MaxUnits)
	logger.Stats("Est. profit", rec.EstimatedProfit)
	logger.Stats("Path", fmt.Sprint(rec.PathToBuy))
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
