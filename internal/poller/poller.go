// Package poller implements the client side of the coordination contract:
// a fixed-cadence, idempotent re-fetch of room state with a locally derived
// phase. Polling is the only synchronization primitive clients have; a
// fresh GET always supersedes whatever phase was derived before.
package poller

// Phase is the client-local view of where the duel stands. It is computed
// purely from the last fetched snapshot, never from elapsed time.
type Phase string

const (
	PhaseWaiting       Phase = "waiting"
	PhasePlaying       Phase = "playing"
	PhaseRoundComplete Phase = "round_complete"
	PhaseGameComplete  Phase = "game_complete"
)

// RoomView is the subset of the room snapshot the poller cares about.
type RoomView struct {
	ID               string `json:"id"`
	RoomName         string `json:"room_name"`
	RoomCode         string `json:"room_code"`
	Rounds           int    `json:"rounds"`
	CurrentRound     int    `json:"current_round"`
	Status           string `json:"status"`
	Player1ID        string `json:"player1_id"`
	Player1Name      string `json:"player1_name"`
	Player1Score     int    `json:"player1_score"`
	Player1Numbers   []int  `json:"player1_numbers"`
	Player1Remaining int    `json:"player1_remaining"`
	Player2ID        string `json:"player2_id"`
	Player2Name      string `json:"player2_name"`
	Player2Score     int    `json:"player2_score"`
	Player2Numbers   []int  `json:"player2_numbers"`
	Player2Remaining int    `json:"player2_remaining"`
	WinnerID         string `json:"winner_id"`
}

// DerivePhase maps a snapshot to the client phase. round_complete means
// both sequences have reached the current round and a resolution call is
// due after a short delay.
func DerivePhase(view RoomView) Phase {
	switch view.Status {
	case "completed":
		return PhaseGameComplete
	case "in_progress":
		if view.Player2ID != "" &&
			len(view.Player1Numbers) >= view.CurrentRound &&
			len(view.Player2Numbers) >= view.CurrentRound {
			return PhaseRoundComplete
		}
		return PhasePlaying
	default:
		return PhaseWaiting
	}
}
