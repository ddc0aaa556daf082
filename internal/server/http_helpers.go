package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeEngineError maps engine errors onto the HTTP surface. Budget
// rejections carry the remaining amount so the client can render it.
func writeEngineError(w http.ResponseWriter, err error) {
	var budgetErr *BudgetError
	switch {
	case errors.As(err, &budgetErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     budgetErr.Error(),
			"remaining": budgetErr.Remaining,
		})
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPlayerNotInRoom):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRoomNotJoinable), errors.Is(err, ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidValue):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
