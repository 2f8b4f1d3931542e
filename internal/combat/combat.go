package combat

import (
	"fmt"

	"sector-sim/internal/logger"
	"sector-sim/internal/rng"
	"sector-sim/internal/ship"
	"sector-sim/internal/simerr"
)

const (
	// MaxRounds bounds an encounter. Normal stat ranges end a fight long before.
	MaxRounds = 1000
	// HesitateChance is the per-round probability of an escape opening.
	HesitateChance = 0.15
	// baseEscapeChance is the escape percentage before the free-hold bonus.
	baseEscapeChance = 40
)

// Opponent is a hostile NPC ship that exists for one encounter.
type Opponent struct {
	Name    string
	Hull    int
	MaxHull int
	Attack  int
	Defense int
	Bounty  int
}

// Destroyed reports whether the opponent's hull is gone.
func (o *Opponent) Destroyed() bool {
	return o.Hull <= 0
}

// SpawnOpponent creates a pirate scaled to the player's attack.
func SpawnOpponent(s *ship.Ship, r rng.Source) *Opponent {
	bonus := rng.Between(r, 0, s.Attack/2)
	return &Opponent{
		Name:    "Space Pirate",
		Hull:    40 + bonus,
		MaxHull: 40 + bonus,
		Attack:  6 + bonus,
		Defense: 3 + bonus,
		Bounty:  150 + bonus*10,
	}
}

// attackRoll is a uniform roll in [0, attack] less the defender's defense,
// never below 1.
func attackRoll(r rng.Source, attack, defense int) int {
	return max(1, rng.Between(r, 0, attack)-defense)
}

// ResolveRound exchanges fire once: the player shoots first and the opponent
// answers only if it survives.
func ResolveRound(s *ship.Ship, o *Opponent, r rng.Source) (dealt, taken int) {
	dealt = attackRoll(r, s.Attack, o.Defense)
	o.Hull = max(0, o.Hull-dealt)
	if o.Destroyed() {
		return dealt, 0
	}
	taken = attackRoll(r, o.Attack, s.Defense)
	s.TakeDamage(taken)
	return dealt, taken
}

// EscapeChance is the escape percentage: 40 plus one per free hold.
// It is deliberately not capped at 100.
func EscapeChance(s *ship.Ship) int {
	return baseEscapeChance + s.FreeHolds()
}

// AttemptEscape rolls once against EscapeChance.
func AttemptEscape(s *ship.Ship, r rng.Source) bool {
	return rng.Between(r, 1, 100) <= EscapeChance(s)
}

// Engage fights a freshly spawned opponent to a terminal state. Each round the
// opponent hesitates with probability HesitateChance, offering one escape
// attempt; a failed attempt uses up the round with no fire exchanged.
// A win pays the bounty into the player's wallet.
func Engage(s *ship.Ship, r rng.Source) (Outcome, error) {
	o := SpawnOpponent(s, r)
	out := Outcome{Opponent: *o}
	out.add(Entry{Kind: EntryAppear, OpponentHull: o.Hull})

	for round := 1; round <= MaxRounds; round++ {
		out.Rounds = round

		if rng.Chance(r, HesitateChance) {
			out.add(Entry{Kind: EntryHesitate})
			if AttemptEscape(s, r) {
				out.add(Entry{Kind: EntryEscaped})
				return out.finish(Escaped, *o), nil
			}
			out.add(Entry{Kind: EntryEscapeFailed})
			continue
		}

		dealt, taken := ResolveRound(s, o, r)
		out.add(Entry{Kind: EntryExchange, Dealt: dealt, Taken: taken, OpponentHull: o.Hull, PlayerHull: s.Hull})

		if o.Destroyed() {
			if err := s.AddCredits(o.Bounty); err != nil {
				return out, err
			}
			out.Bounty = o.Bounty
			out.add(Entry{Kind: EntryWin, Bounty: o.Bounty})
			return out.finish(Win, *o), nil
		}
		if s.Destroyed() {
			out.add(Entry{Kind: EntryDeath})
			return out.finish(Death, *o), nil
		}
	}
	return out, fmt.Errorf("combat exceeded %d rounds (player hull %d, opponent hull %d): %w",
		MaxRounds, s.Hull, o.Hull, simerr.ErrInvariant)
}

func (out Outcome) finish(res Result, o Opponent) Outcome {
	out.Result = res
	out.Opponent = o
	logger.Debug("Combat", fmt.Sprintf("%s after %d rounds (bounty %d)", res, out.Rounds, out.Bounty))
	return out
}
