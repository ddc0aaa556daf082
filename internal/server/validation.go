package server

import (
	"fmt"
	"strings"
)

const maxRoomNameLength = 40

// checkBudget is the only business rule gated on submissions: the proposed
// value must be a non-negative integer and must not push the cumulative
// total past the per-player budget. Round bounds and player identity are
// checked by the submission path, not here.
func checkBudget(existing []int, value int) error {
	if value < 0 || value > budgetPerPlayer {
		return ErrInvalidValue
	}
	if sumNumbers(existing)+value > budgetPerPlayer {
		return &BudgetError{Remaining: remainingBudget(existing)}
	}
	return nil
}

func remainingBudget(numbers []int) int {
	remaining := budgetPerPlayer - sumNumbers(numbers)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func sumNumbers(numbers []int) int {
	total := 0
	for _, n := range numbers {
		total += n
	}
	return total
}

func validateRoomName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", fmt.Errorf("room_name is required")
	}
	if len(trimmed) > maxRoomNameLength {
		return "", fmt.Errorf("room_name must be %d characters or fewer", maxRoomNameLength)
	}
	return trimmed, nil
}

func (s *Server) validateRounds(rounds int) (int, error) {
	if rounds == 0 {
		return s.cfg.DefaultRounds, nil
	}
	if rounds < 1 || rounds > s.cfg.MaxRounds {
		return 0, fmt.Errorf("rounds must be between 1 and %d", s.cfg.MaxRounds)
	}
	return rounds, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
