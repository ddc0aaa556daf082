package server

// snapshot is the wire form of a room. Number sequences go out decoded;
// the serialized store representation never crosses the API boundary.
func snapshot(room *Room) map[string]any {
	out := map[string]any{
		"id":                room.ID,
		"room_name":         room.Name,
		"room_code":         room.Code,
		"rounds":            room.Rounds,
		"current_round":     room.CurrentRound,
		"status":            room.Status,
		"player1_id":        room.Player1.ID,
		"player1_name":      room.Player1.Name,
		"player1_score":     room.Player1.Score,
		"player1_numbers":   room.Player1.Numbers,
		"player1_remaining": remainingBudget(room.Player1.Numbers),
		"player2_id":        nil,
		"player2_name":      nil,
		"player2_score":     room.Player2.Score,
		"player2_numbers":   room.Player2.Numbers,
		"player2_remaining": remainingBudget(room.Player2.Numbers),
		"winner_id":         room.winnerID(),
		"round_results":     roundResults(room),
		"created_at":        room.CreatedAt,
	}
	if room.hasPlayer2() {
		out["player2_id"] = room.Player2.ID
		out["player2_name"] = room.Player2.Name
	}
	return out
}
