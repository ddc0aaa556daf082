package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type createRoomRequest struct {
	RoomName string `json:"room_name"`
	Rounds   int    `json:"rounds"`
}

type joinByCodeRequest struct {
	RoomCode string `json:"room_code"`
}

type submitRequest struct {
	Value *int `json:"value"`
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	if _, err := s.identify(r); err != nil {
		writeEngineError(w, err)
		return
	}
	rooms, err := s.rooms.ListWaiting(s.cfg.RoomListLimit)
	if err != nil {
		log.Error().Err(err).Msg("list waiting rooms")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	snapshots := make([]map[string]any, 0, len(rooms))
	for _, room := range rooms {
		snapshots = append(snapshots, snapshot(room))
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identify(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	var req createRoomRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "room_name is required")
		return
	}
	name, err := validateRoomName(req.RoomName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rounds, err := s.validateRounds(req.Rounds)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	room, err := s.createRoom(ident, name, rounds)
	if err != nil {
		log.Error().Err(err).Msg("create room")
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}
	log.Info().
		Str("room_id", room.ID).
		Str("room_code", room.Code).
		Int("rounds", room.Rounds).
		Msg("room created")
	s.recordEvent(room, "room_created", map[string]any{
		"room_name": room.Name,
		"rounds":    room.Rounds,
	})
	writeJSON(w, http.StatusCreated, snapshot(room))
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.rooms.Get(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(room))
}

func (s *Server) handleJoinByCode(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identify(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	var req joinByCodeRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "room_code is required")
		return
	}
	room, err := s.joinByCode(ident, req.RoomCode)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if room.Player2.ID == ident.UserID {
		log.Info().
			Str("room_id", room.ID).
			Str("player_id", ident.UserID).
			Msg("player joined")
		s.recordEvent(room, "player_joined", map[string]any{
			"player_id":   ident.UserID,
			"player_name": ident.Name,
		})
	}
	writeJSON(w, http.StatusOK, snapshot(room))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identify(r)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	var req submitRequest
	if err := readJSON(r.Body, &req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, ErrInvalidValue.Error())
		return
	}
	room, err := s.submitNumber(ident, r.PathValue("id"), *req.Value)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	log.Info().
		Str("room_id", room.ID).
		Str("player_id", ident.UserID).
		Int("round", room.CurrentRound).
		Msg("number submitted")
	s.recordEvent(room, "number_submitted", map[string]any{
		"player_id": ident.UserID,
		"round":     room.CurrentRound,
	})
	writeJSON(w, http.StatusOK, snapshot(room))
}

func (s *Server) handleProcessRound(w http.ResponseWriter, r *http.Request) {
	before, err := s.rooms.Get(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	room, err := s.resolveRound(before.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if room.CurrentRound != before.CurrentRound || room.Status != before.Status {
		log.Info().
			Str("room_id", room.ID).
			Int("round", before.CurrentRound).
			Str("status", room.Status).
			Msg("round resolved")
		eventType := "round_resolved"
		if room.Status == statusCompleted {
			eventType = "game_completed"
		}
		s.recordEvent(room, eventType, map[string]any{
			"round":         before.CurrentRound,
			"player1_score": room.Player1.Score,
			"player2_score": room.Player2.Score,
			"winner_id":     room.winnerID(),
		})
	}
	writeJSON(w, http.StatusOK, snapshot(room))
}
