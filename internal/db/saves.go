package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sector-sim/internal/goods"
	"sector-sim/internal/graph"
	"sector-sim/internal/logger"
	"sector-sim/internal/market"
	"sector-sim/internal/ship"
	"sector-sim/internal/world"
)

// Fixed-width so created_at sorts as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z"

// SaveInfo is one row of the save list.
type SaveInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Seed      uint64
	Sectors   int
	Time      int
	Day       int
}

// SaveSession writes the whole session in one transaction and returns the
// new save's id.
func (d *DB) SaveSession(name string, snap *world.Snapshot) (string, error) {
	if snap == nil || snap.Universe == nil || snap.Ship == nil {
		return "", errors.New("save session: incomplete snapshot")
	}
	id := uuid.NewString()
	u := snap.Universe

	tx, err := d.sql.Begin()
	if err != nil {
		return "", fmt.Errorf("save session: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Seeds are stored bit-for-bit as signed integers.
	if _, err := tx.Exec(`INSERT INTO saves (id, name, created_at, seed, sectors, time, day)
		VALUES (?,?,?,?,?,?,?)`,
		id, name, time.Now().UTC().Format(createdLayout), int64(snap.Seed), u.Len(), snap.Time, snap.Day,
	); err != nil {
		return "", fmt.Errorf("save session: insert save: %w", err)
	}

	if err := insertSectors(tx, id, u); err != nil {
		return "", err
	}
	if err := insertShip(tx, id, snap.Ship); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save session: commit: %w", err)
	}
	logger.Info("DB", fmt.Sprintf("Saved %q as %s (%d sectors)", name, id, u.Len()))
	return id, nil
}

func insertSectors(tx *sql.Tx, saveID string, u *graph.Universe) error {
	sectorStmt, err := tx.Prepare(`INSERT INTO sectors (save_id, id, kind, pirates) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("save session: prepare sectors: %w", err)
	}
	defer sectorStmt.Close()
	laneStmt, err := tx.Prepare(`INSERT INTO lanes (save_id, a, b) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("save session: prepare lanes: %w", err)
	}
	defer laneStmt.Close()
	portStmt, err := tx.Prepare(`INSERT INTO ports (
		save_id, sector_id, name, class,
		level_ore, level_organics, level_equipment,
		base_ore, base_organics, base_equipment
	) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("save session: prepare ports: %w", err)
	}
	defer portStmt.Close()
	planetStmt, err := tx.Prepare(`INSERT INTO planets (
		save_id, sector_id, name,
		goods_ore, goods_organics, goods_equipment, treasury,
		prod_ore, prod_organics, prod_equipment
	) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("save session: prepare planets: %w", err)
	}
	defer planetStmt.Close()

	for _, sid := range u.IDs() {
		s := u.Sector(sid)
		if _, err := sectorStmt.Exec(saveID, sid, s.Kind.String(), s.Pirates); err != nil {
			return fmt.Errorf("save session: sector %d: %w", sid, err)
		}
		// Each lane once, lower id first.
		for _, n := range s.Neighbors {
			if n <= sid {
				continue
			}
			if _, err := laneStmt.Exec(saveID, sid, n); err != nil {
				return fmt.Errorf("save session: lane %d-%d: %w", sid, n, err)
			}
		}
		if p := s.Port; p != nil {
			if _, err := portStmt.Exec(saveID, sid, p.Name, int(p.Class),
				p.Levels[0], p.Levels[1], p.Levels[2],
				p.Base[0], p.Base[1], p.Base[2],
			); err != nil {
				return fmt.Errorf("save session: port %d: %w", sid, err)
			}
		}
		if pl := s.Planet; pl != nil {
			if _, err := planetStmt.Exec(saveID, sid, pl.Name,
				pl.Goods[0], pl.Goods[1], pl.Goods[2], pl.Treasury,
				pl.Production[0], pl.Production[1], pl.Production[2],
			); err != nil {
				return fmt.Errorf("save session: planet %d: %w", sid, err)
			}
		}
	}
	return nil
}

func insertShip(tx *sql.Tx, saveID string, s *ship.Ship) error {
	_, err := tx.Exec(`INSERT INTO ships (
		save_id, name, hull, max_hull, attack, defense, max_holds,
		cargo_ore, cargo_organics, cargo_equipment,
		credits, bank_balance, fuel, location
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		saveID, s.Name, s.Hull, s.MaxHull, s.Attack, s.Defense, s.MaxHolds,
		s.Cargo[0], s.Cargo[1], s.Cargo[2],
		s.Credits, s.BankBalance, s.Fuel, s.Location,
	)
	if err != nil {
		return fmt.Errorf("save session: ship: %w", err)
	}
	return nil
}

// LoadSession rebuilds a saved session. Ports recompute their prices from
// the stored levels, and the universe is validated before it is returned.
// An unknown id yields an error wrapping sql.ErrNoRows.
func (d *DB) LoadSession(id string) (*world.Snapshot, error) {
	var (
		seed    int64
		sectors int
		snap    world.Snapshot
	)
	err := d.sql.QueryRow(`SELECT seed, sectors, time, day FROM saves WHERE id = ?`, id).
		Scan(&seed, &sectors, &snap.Time, &snap.Day)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	snap.Seed = uint64(seed)

	u, err := d.loadSectors(id, sectors)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := d.loadLanes(id, u); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := d.loadPorts(id, u); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := d.loadPlanets(id, u); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	s, err := d.loadShip(id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	snap.Universe = u
	snap.Ship = s
	logger.Info("DB", fmt.Sprintf("Loaded %s (%d sectors)", id, u.Len()))
	return &snap, nil
}

func (d *DB) loadSectors(saveID string, n int) (*graph.Universe, error) {
	rows, err := d.sql.Query(`SELECT id, kind, pirates FROM sectors WHERE save_id = ? ORDER BY id`, saveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	u := graph.NewUniverse(n)
	seen := 0
	for rows.Next() {
		var (
			id      int
			kind    string
			pirates bool
		)
		if err := rows.Scan(&id, &kind, &pirates); err != nil {
			return nil, err
		}
		s := u.Sector(id)
		if s == nil {
			return nil, fmt.Errorf("sector %d outside 1..%d", id, n)
		}
		k, err := graph.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", id, err)
		}
		s.Kind = k
		s.Pirates = pirates
		seen++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if seen != n {
		return nil, fmt.Errorf("found %d of %d sectors", seen, n)
	}
	return u, nil
}

func (d *DB) loadLanes(saveID string, u *graph.Universe) error {
	rows, err := d.sql.Query(`SELECT a, b FROM lanes WHERE save_id = ? ORDER BY a, b`, saveID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a, b int
		if err := rows.Scan(&a, &b); err != nil {
			return err
		}
		if _, err := u.AddLane(a, b); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (d *DB) loadPorts(saveID string, u *graph.Universe) error {
	rows, err := d.sql.Query(`SELECT sector_id, name, class,
		level_ore, level_organics, level_equipment,
		base_ore, base_organics, base_equipment
		FROM ports WHERE save_id = ? ORDER BY sector_id`, saveID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			sid          int
			name         string
			class        int
			levels, base [goods.Count]int
		)
		if err := rows.Scan(&sid, &name, &class,
			&levels[0], &levels[1], &levels[2],
			&base[0], &base[1], &base[2],
		); err != nil {
			return err
		}
		s := u.Sector(sid)
		if s == nil {
			return fmt.Errorf("port in unknown sector %d", sid)
		}
		p, err := market.RestorePort(name, market.Class(class), levels, base)
		if err != nil {
			return fmt.Errorf("port %d: %w", sid, err)
		}
		s.Port = p
	}
	return rows.Err()
}

func (d *DB) loadPlanets(saveID string, u *graph.Universe) error {
	rows, err := d.sql.Query(`SELECT sector_id, name,
		goods_ore, goods_organics, goods_equipment, treasury,
		prod_ore, prod_organics, prod_equipment
		FROM planets WHERE save_id = ? ORDER BY sector_id`, saveID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		p := &market.Planet{}
		if err := rows.Scan(&p.SectorID, &p.Name,
			&p.Goods[0], &p.Goods[1], &p.Goods[2], &p.Treasury,
			&p.Production[0], &p.Production[1], &p.Production[2],
		); err != nil {
			return err
		}
		s := u.Sector(p.SectorID)
		if s == nil {
			return fmt.Errorf("planet in unknown sector %d", p.SectorID)
		}
		s.Planet = p
	}
	return rows.Err()
}

func (d *DB) loadShip(saveID string) (*ship.Ship, error) {
	s := &ship.Ship{}
	err := d.sql.QueryRow(`SELECT name, hull, max_hull, attack, defense, max_holds,
		cargo_ore, cargo_organics, cargo_equipment,
		credits, bank_balance, fuel, location
		FROM ships WHERE save_id = ?`, saveID).Scan(
		&s.Name, &s.Hull, &s.MaxHull, &s.Attack, &s.Defense, &s.MaxHolds,
		&s.Cargo[0], &s.Cargo[1], &s.Cargo[2],
		&s.Credits, &s.BankBalance, &s.Fuel, &s.Location,
	)
	if err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}
	return s, nil
}

// ListSaves returns every save, newest first.
func (d *DB) ListSaves() ([]SaveInfo, error) {
	rows, err := d.sql.Query(`SELECT id, name, created_at, seed, sectors, time, day
		FROM saves ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var (
			info    SaveInfo
			created string
			seed    int64
		)
		if err := rows.Scan(&info.ID, &info.Name, &created, &seed, &info.Sectors, &info.Time, &info.Day); err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		info.CreatedAt, _ = time.Parse(createdLayout, created)
		info.Seed = uint64(seed)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	if out == nil {
		return []SaveInfo{}, nil
	}
	return out, nil
}

// DeleteSave removes a save and all of its rows. An unknown id yields an
// error wrapping sql.ErrNoRows.
func (d *DB) DeleteSave(id string) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("delete save: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"sectors", "lanes", "ports", "planets", "ships"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE save_id = ?", id); err != nil {
			return fmt.Errorf("delete save %s: %s: %w", id, table, err)
		}
	}
	res, err := tx.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete save %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete save %s: %w", id, sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete save %s: commit: %w", id, err)
	}
	logger.Info("DB", fmt.Sprintf("Deleted save %s", id))
	return nil
}
