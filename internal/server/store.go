package server

import (
	"sort"
	"sync"
	"time"
)

// RoomStore is the coordination surface the engine runs on. Every method is
// atomic with respect to a single room: Update performs a read-modify-write
// that either fully applies fn or leaves the room untouched. All returned
// rooms are snapshots; mutating them does not affect stored state.
type RoomStore interface {
	Get(id string) (*Room, error)
	Insert(room *Room) error
	FindWaitingByCode(code string) (*Room, error)
	ListWaiting(limit int) ([]*Room, error)
	Update(id string, fn func(room *Room) error) (*Room, error)
}

// memStore keeps rooms in process memory. It backs tests and secretless
// local play; deployments point the server at Postgres instead.
type memStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func newMemStore() *memStore {
	return &memStore{rooms: make(map[string]*Room)}
}

func (s *memStore) Get(id string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.clone(), nil
}

func (s *memStore) Insert(room *Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rooms {
		if existing.Status == statusWaiting && existing.Code == room.Code {
			return errRoomCodeTaken
		}
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	s.rooms[room.ID] = room.clone()
	return nil
}

func (s *memStore) FindWaitingByCode(code string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range s.rooms {
		if room.Status == statusWaiting && room.Code == code {
			return room.clone(), nil
		}
	}
	return nil, ErrRoomNotFound
}

func (s *memStore) ListWaiting(limit int) ([]*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if room.Status == statusWaiting {
			list = append(list, room.clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *memStore) Update(id string, fn func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	updated := room.clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.Version = room.Version + 1
	s.rooms[id] = updated
	return updated.clone(), nil
}
