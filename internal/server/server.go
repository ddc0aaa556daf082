package server

import (
	"net/http"

	"number-duel/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	rooms RoomStore
	db    *gorm.DB
	cfg   config.Config
}

// New builds a server around the given database connection. With a nil
// connection rooms live in process memory, which is enough for tests and
// single-process local play.
func New(conn *gorm.DB, cfg config.Config) *Server {
	var store RoomStore = newMemStore()
	if conn != nil {
		store = newDBStore(conn)
	}
	return &Server{
		rooms: store,
		db:    conn,
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/room/{id}", s.handleGetRoom)
	mux.HandleFunc("POST /api/join-by-code", s.handleJoinByCode)
	mux.HandleFunc("POST /api/room/{id}/submit", s.handleSubmit)
	mux.HandleFunc("POST /api/room/{id}/process-round", s.handleProcessRound)
	mux.HandleFunc("GET /api/room/{id}/events", s.handleEvents)
	return mux
}
