package server

// resolveRound settles the current round if both numbers are in, then
// either advances the round counter or completes the duel. It is called by
// whichever client polls first, possibly by both: every outcome is derived
// from the freshly read row inside Update, so a raced second call sees the
// already-advanced round, fails the readiness check and returns the room
// unchanged. "Not ready" is a normal outcome, never an error.
func (s *Server) resolveRound(roomID string) (*Room, error) {
	return s.rooms.Update(roomID, func(r *Room) error {
		if r.Status != statusInProgress {
			return nil
		}
		if !r.roundFullySubmitted() {
			return nil
		}
		round := r.CurrentRound
		p1 := r.Player1.Numbers[round-1]
		p2 := r.Player2.Numbers[round-1]
		switch {
		case p1 > p2:
			r.Player1.Score++
		case p2 > p1:
			r.Player2.Score++
		}
		if round >= r.Rounds {
			r.Status = statusCompleted
			r.Winner = finalWinner(r)
			return nil
		}
		r.CurrentRound = round + 1
		return nil
	})
}

func finalWinner(r *Room) Winner {
	switch {
	case r.Player1.Score > r.Player2.Score:
		return WinnerPlayer1
	case r.Player2.Score > r.Player1.Score:
		return WinnerPlayer2
	default:
		return WinnerTie
	}
}

type roundResult struct {
	Round   int    `json:"round"`
	Player1 int    `json:"player1"`
	Player2 int    `json:"player2"`
	Winner  string `json:"winner"`
}

// roundResults reports every already-resolved round, oldest first.
func roundResults(r *Room) []roundResult {
	resolved := r.resolvedRounds()
	results := make([]roundResult, 0, resolved)
	for i := 0; i < resolved; i++ {
		if i >= len(r.Player1.Numbers) || i >= len(r.Player2.Numbers) {
			break
		}
		p1 := r.Player1.Numbers[i]
		p2 := r.Player2.Numbers[i]
		winner := winnerTieSentinel
		if p1 > p2 {
			winner = "player1"
		} else if p2 > p1 {
			winner = "player2"
		}
		results = append(results, roundResult{
			Round:   i + 1,
			Player1: p1,
			Player2: p2,
			Winner:  winner,
		})
	}
	return results
}
