package combat

import "fmt"

// Result is how an encounter ended.
type Result uint8

const (
	Win Result = iota + 1
	Death
	Escaped
)

func (r Result) String() string {
	switch r {
	case Win:
		return "WIN"
	case Death:
		return "DEATH"
	case Escaped:
		return "ESCAPED"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// EntryKind classifies a damage-log line.
type EntryKind uint8

const (
	EntryAppear EntryKind = iota + 1
	EntryHesitate
	EntryEscaped
	EntryEscapeFailed
	EntryExchange
	EntryWin
	EntryDeath
)

// Entry is one line of the damage log.
type Entry struct {
	Kind         EntryKind
	Dealt        int // damage the player dealt (EntryExchange)
	Taken        int // damage the player took (EntryExchange)
	PlayerHull   int
	OpponentHull int
	Bounty       int // EntryWin
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryAppear:
		return fmt.Sprintf("A pirate appears! Hull: %d", e.OpponentHull)
	case EntryHesitate:
		return "The pirate hesitates, an opening to escape!"
	case EntryEscaped:
		return "You escape successfully!"
	case EntryEscapeFailed:
		return "Escape failed!"
	case EntryExchange:
		if e.Taken == 0 {
			return fmt.Sprintf("You deal %d damage. Pirate hull: %d", e.Dealt, e.OpponentHull)
		}
		return fmt.Sprintf("You deal %d damage. Pirate hull: %d. The pirate hits you for %d. Hull: %d",
			e.Dealt, e.OpponentHull, e.Taken, e.PlayerHull)
	case EntryWin:
		return fmt.Sprintf("You destroyed the pirate and collect %d credits.", e.Bounty)
	case EntryDeath:
		return "Your ship is destroyed!"
	default:
		return fmt.Sprintf("entry(%d)", uint8(e.Kind))
	}
}

// Outcome describes a finished encounter.
type Outcome struct {
	Result   Result
	Opponent Opponent // final state
	Rounds   int
	Bounty   int // credits awarded, 0 unless Win
	Log      []Entry
}

func (out *Outcome) add(e Entry) {
	out.Log = append(out.Log, e)
}

// DamageDealt totals the damage the player dealt.
func (out *Outcome) DamageDealt() int {
	total := 0
	for _, e := range out.Log {
		total += e.Dealt
	}
	return total
}

// DamageTaken totals the damage the player took.
func (out *Outcome) DamageTaken() int {
	total := 0
	for _, e := range out.Log {
		total += e.Taken
	}
	return total
}
