package server

import (
	"encoding/json"
	"net/http"

	"number-duel/internal/db"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// recordEvent appends to the room's audit trail. Event writes are best
// effort: the engine's state already committed, so a failed insert is
// logged and swallowed.
func (s *Server) recordEvent(room *Room, eventType string, payload map[string]any) {
	if s.db == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("encode room event")
		return
	}
	event := db.RoomEvent{
		RoomID:  room.ID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if err := s.db.Create(&event).Error; err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("persist room event")
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "events not available")
		return
	}
	roomID := r.PathValue("id")
	if _, err := s.rooms.Get(roomID); err != nil {
		writeEngineError(w, err)
		return
	}
	var events []db.RoomEvent
	if err := s.db.Where("room_id = ?", roomID).Order("created_at ASC").Find(&events).Error; err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("list room events")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]map[string]any, 0, len(events))
	for _, event := range events {
		out = append(out, map[string]any{
			"type":       event.Type,
			"payload":    json.RawMessage(event.Payload),
			"created_at": event.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
