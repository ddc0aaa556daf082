package server

import (
	"errors"
	"testing"
	"time"
)

func waitingRoom(id, code string, createdAt time.Time) *Room {
	return &Room{
		ID:           id,
		Name:         "Duel " + id,
		Code:         code,
		Rounds:       3,
		CurrentRound: 1,
		Status:       statusWaiting,
		Player1:      PlayerSlot{ID: "p1", Name: "Ada", Numbers: []int{}},
		Player2:      PlayerSlot{Numbers: []int{}},
		CreatedAt:    createdAt,
	}
}

func TestMemStoreInsertRejectsDuplicateWaitingCode(t *testing.T) {
	store := newMemStore()
	now := time.Now().UTC()

	if err := store.Insert(waitingRoom("a", "ABC234", now)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := store.Insert(waitingRoom("b", "ABC234", now))
	if !errors.Is(err, errRoomCodeTaken) {
		t.Fatalf("expected code collision, got %v", err)
	}

	// A finished room releases the code for reuse.
	if _, err := store.Update("a", func(r *Room) error {
		r.Status = statusCompleted
		return nil
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := store.Insert(waitingRoom("b", "ABC234", now)); err != nil {
		t.Fatalf("expected reuse after completion, got %v", err)
	}
}

func TestMemStoreListWaitingOrdersAndLimits(t *testing.T) {
	store := newMemStore()
	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		room := waitingRoom(id, "CODE"+id, base.Add(time.Duration(i)*time.Second))
		if err := store.Insert(room); err != nil {
			t.Fatalf("insert %s failed: %v", id, err)
		}
	}
	if _, err := store.Update("b", func(r *Room) error {
		r.Status = statusInProgress
		return nil
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	list, err := store.ListWaiting(10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "a" {
		t.Fatalf("expected [c a], got %#v", list)
	}

	limited, err := store.ListWaiting(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "c" {
		t.Fatalf("expected newest waiting room only, got %#v", limited)
	}
}

func TestMemStoreUpdateBumpsVersionAndIsolates(t *testing.T) {
	store := newMemStore()
	if err := store.Insert(waitingRoom("a", "ABC234", time.Now().UTC())); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	updated, err := store.Update("a", func(r *Room) error {
		r.Player1.Numbers = append(r.Player1.Numbers, 30)
		return nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Version != 1 {
		t.Fatalf("expected version 1, got %d", updated.Version)
	}

	// Mutating the returned snapshot must not leak into the store.
	updated.Player1.Numbers[0] = 99
	stored, err := store.Get("a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Player1.Numbers[0] != 30 {
		t.Fatalf("stored state mutated through snapshot: %#v", stored.Player1.Numbers)
	}
}

func TestMemStoreUpdateErrorLeavesStateUntouched(t *testing.T) {
	store := newMemStore()
	if err := store.Insert(waitingRoom("a", "ABC234", time.Now().UTC())); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	wantErr := errors.New("rejected")
	if _, err := store.Update("a", func(r *Room) error {
		r.Player1.Numbers = append(r.Player1.Numbers, 30)
		return wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}

	stored, err := store.Get("a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Player1.Numbers) != 0 || stored.Version != 0 {
		t.Fatalf("state changed despite rejected update: %#v", stored)
	}
}

func TestMemStoreUnknownRoom(t *testing.T) {
	store := newMemStore()
	if _, err := store.Get("missing"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, err := store.Update("missing", func(r *Room) error { return nil }); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, err := store.FindWaitingByCode("ABC234"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
