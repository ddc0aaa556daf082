package server

import (
	"errors"
	"testing"

	"number-duel/internal/config"
)

func TestCheckBudget(t *testing.T) {
	cases := []struct {
		name     string
		existing []int
		value    int
		wantErr  error
	}{
		{name: "first value", existing: nil, value: 30},
		{name: "zero is allowed", existing: nil, value: 0},
		{name: "exact budget", existing: nil, value: 100},
		{name: "fills remaining", existing: []int{60}, value: 40},
		{name: "negative", existing: nil, value: -1, wantErr: ErrInvalidValue},
		{name: "above single-value cap", existing: nil, value: 101, wantErr: ErrInvalidValue},
		{name: "over budget", existing: []int{60}, value: 41, wantErr: &BudgetError{Remaining: 40}},
		{name: "budget exhausted", existing: []int{100}, value: 1, wantErr: &BudgetError{Remaining: 0}},
		{name: "over budget mid-game", existing: []int{30, 20}, value: 60, wantErr: &BudgetError{Remaining: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkBudget(tc.existing, tc.value)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected accept, got %v", err)
				}
				return
			}
			if wantBudget, ok := tc.wantErr.(*BudgetError); ok {
				var budgetErr *BudgetError
				if !errors.As(err, &budgetErr) {
					t.Fatalf("expected budget error, got %v", err)
				}
				if budgetErr.Remaining != wantBudget.Remaining {
					t.Fatalf("expected remaining %d, got %d", wantBudget.Remaining, budgetErr.Remaining)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRemainingBudget(t *testing.T) {
	if got := remainingBudget(nil); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := remainingBudget([]int{30, 20}); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := remainingBudget([]int{100}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestValidateRoomName(t *testing.T) {
	name, err := validateRoomName("  Friday   Duel  ")
	if err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}
	if name != "Friday Duel" {
		t.Fatalf("expected collapsed whitespace, got %q", name)
	}

	if _, err := validateRoomName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}

	long := make([]byte, maxRoomNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := validateRoomName(string(long)); err == nil {
		t.Fatal("expected error for overlong name")
	}
}

func TestValidateRounds(t *testing.T) {
	srv := New(nil, config.Default())

	rounds, err := srv.validateRounds(0)
	if err != nil {
		t.Fatalf("expected default rounds, got %v", err)
	}
	if rounds != srv.cfg.DefaultRounds {
		t.Fatalf("expected %d rounds, got %d", srv.cfg.DefaultRounds, rounds)
	}

	if _, err := srv.validateRounds(srv.cfg.MaxRounds + 1); err == nil {
		t.Fatal("expected error above max rounds")
	}
	if _, err := srv.validateRounds(-1); err == nil {
		t.Fatal("expected error for negative rounds")
	}
	if rounds, err := srv.validateRounds(1); err != nil || rounds != 1 {
		t.Fatalf("expected 1 round, got %d (%v)", rounds, err)
	}
}
