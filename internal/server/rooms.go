package server

import "time"

const (
	statusWaiting    = "waiting"
	statusInProgress = "in_progress"
	statusCompleted  = "completed"
)

// budgetPerPlayer is the point pool each player spreads across all rounds.
const budgetPerPlayer = 100

// Winner distinguishes "nobody yet" from "nobody at all". A completed room
// always carries Player1, Player2 or Tie; Unset means the duel is still
// running.
type Winner int

const (
	WinnerUnset Winner = iota
	WinnerPlayer1
	WinnerPlayer2
	WinnerTie
)

const winnerTieSentinel = "tie"

type PlayerSlot struct {
	ID      string
	Name    string
	Score   int
	Numbers []int
}

// Room is the decoded form of one game_rooms row. Number sequences are
// plain int slices here; serialization happens at the store boundary.
type Room struct {
	ID           string
	Name         string
	Code         string
	Rounds       int
	CurrentRound int
	Status       string
	Player1      PlayerSlot
	Player2      PlayerSlot
	Winner       Winner
	Version      int64
	CreatedAt    time.Time
}

// slotFor returns the slot the given player occupies, or nil.
func (r *Room) slotFor(playerID string) *PlayerSlot {
	if playerID == "" {
		return nil
	}
	if r.Player1.ID == playerID {
		return &r.Player1
	}
	if r.Player2.ID == playerID {
		return &r.Player2
	}
	return nil
}

func (r *Room) hasPlayer2() bool {
	return r.Player2.ID != ""
}

// roundFullySubmitted reports whether both players have a number on record
// for the round currently being played.
func (r *Room) roundFullySubmitted() bool {
	if !r.hasPlayer2() {
		return false
	}
	return len(r.Player1.Numbers) >= r.CurrentRound && len(r.Player2.Numbers) >= r.CurrentRound
}

// resolvedRounds is how many rounds have already been scored.
func (r *Room) resolvedRounds() int {
	if r.Status == statusCompleted {
		return r.Rounds
	}
	return r.CurrentRound - 1
}

func (r *Room) clone() *Room {
	copied := *r
	copied.Player1.Numbers = append([]int(nil), r.Player1.Numbers...)
	copied.Player2.Numbers = append([]int(nil), r.Player2.Numbers...)
	return &copied
}

// winnerID yields the wire value for winner_id: a player id, the tie
// sentinel, or nil while the duel is unresolved.
func (r *Room) winnerID() any {
	switch r.Winner {
	case WinnerPlayer1:
		return r.Player1.ID
	case WinnerPlayer2:
		return r.Player2.ID
	case WinnerTie:
		return winnerTieSentinel
	default:
		return nil
	}
}
