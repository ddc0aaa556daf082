package server

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotInRoom  = errors.New("player not in room")
	ErrRoomNotJoinable  = errors.New("room not found or already in progress")
	ErrAlreadySubmitted = errors.New("number already submitted for this round")
	ErrInvalidValue     = errors.New("value must be a whole number between 0 and 100")

	errUnauthenticated = errors.New("authentication required")

	// errRoomCodeTaken stays internal: room creation retries with a fresh code.
	errRoomCodeTaken = errors.New("room code already in use")
)

// BudgetError rejects a submission that would push a player's cumulative
// total past the budget. Remaining is reported back to the caller so the
// client can render it.
type BudgetError struct {
	Remaining int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("total points cannot exceed %d; you have %d points remaining", budgetPerPlayer, e.Remaining)
}
