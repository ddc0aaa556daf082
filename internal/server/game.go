package server

import (
	"errors"
	"strings"
	"time"
)

const createCodeRetryLimit = 5

// createRoom opens a new waiting room with the caller as player1. Codes are
// regenerated on collision so that at most one waiting room carries a given
// code.
func (s *Server) createRoom(ident Identity, name string, rounds int) (*Room, error) {
	for attempt := 0; attempt < createCodeRetryLimit; attempt++ {
		room := &Room{
			ID:           newRoomID(),
			Name:         name,
			Code:         newRoomCode(),
			Rounds:       rounds,
			CurrentRound: 1,
			Status:       statusWaiting,
			Player1: PlayerSlot{
				ID:      ident.UserID,
				Name:    ident.Name,
				Numbers: []int{},
			},
			Player2:   PlayerSlot{Numbers: []int{}},
			CreatedAt: time.Now().UTC(),
		}
		err := s.rooms.Insert(room)
		if errors.Is(err, errRoomCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return room, nil
	}
	return nil, errors.New("could not allocate a unique room code")
}

// joinByCode attaches the caller as player2 and starts the duel. The
// waiting check is repeated inside Update so a raced second join observes
// the already-started room and fails instead of clobbering player2.
func (s *Server) joinByCode(ident Identity, code string) (*Room, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrRoomNotFound
	}
	room, err := s.rooms.FindWaitingByCode(code)
	if err != nil {
		return nil, err
	}
	if room.Player1.ID == ident.UserID {
		// Self-join: already in the room, return state untouched.
		return room, nil
	}
	return s.rooms.Update(room.ID, func(r *Room) error {
		if r.Status != statusWaiting || r.hasPlayer2() {
			return ErrRoomNotJoinable
		}
		if r.Player1.ID == ident.UserID {
			return nil
		}
		r.Player2 = PlayerSlot{
			ID:      ident.UserID,
			Name:    ident.Name,
			Numbers: []int{},
		}
		r.Status = statusInProgress
		return nil
	})
}

// submitNumber appends a value to the caller's sequence for the current
// round. Exactly one slot's sequence changes; scores, round and status are
// left to the resolver.
func (s *Server) submitNumber(ident Identity, roomID string, value int) (*Room, error) {
	return s.rooms.Update(roomID, func(r *Room) error {
		slot := r.slotFor(ident.UserID)
		if slot == nil {
			return ErrPlayerNotInRoom
		}
		if len(slot.Numbers) >= r.CurrentRound {
			return ErrAlreadySubmitted
		}
		if err := checkBudget(slot.Numbers, value); err != nil {
			return err
		}
		slot.Numbers = append(slot.Numbers, value)
		return nil
	})
}
