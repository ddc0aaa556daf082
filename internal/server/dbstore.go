package server

import (
	"encoding/json"
	"errors"

	"number-duel/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// dbStore keeps rooms in Postgres. Calls may arrive from independent server
// processes, so cross-call safety has to come from the rows themselves:
// Update re-reads the row, applies fn to a copy and writes back guarded by
// the version column. A concurrent writer bumps the version first, the
// guarded write matches zero rows, and the whole read-modify-write is
// retried against fresh state.
type dbStore struct {
	db *gorm.DB
}

const updateRetryLimit = 5

func newDBStore(conn *gorm.DB) *dbStore {
	return &dbStore{db: conn}
}

func (s *dbStore) Get(id string) (*Room, error) {
	var record db.GameRoom
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return recordToRoom(&record)
}

func (s *dbStore) Insert(room *Room) error {
	record, err := roomToRecord(room)
	if err != nil {
		return err
	}
	if err := s.db.Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return errRoomCodeTaken
		}
		return err
	}
	room.CreatedAt = record.CreatedAt
	return nil
}

func (s *dbStore) FindWaitingByCode(code string) (*Room, error) {
	var record db.GameRoom
	err := s.db.Where("room_code = ? AND status = ?", code, statusWaiting).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return recordToRoom(&record)
}

func (s *dbStore) ListWaiting(limit int) ([]*Room, error) {
	var records []db.GameRoom
	query := s.db.Where("status = ?", statusWaiting).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	rooms := make([]*Room, 0, len(records))
	for i := range records {
		room, err := recordToRoom(&records[i])
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *dbStore) Update(id string, fn func(room *Room) error) (*Room, error) {
	for attempt := 0; attempt < updateRetryLimit; attempt++ {
		var record db.GameRoom
		if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		room, err := recordToRoom(&record)
		if err != nil {
			return nil, err
		}
		if err := fn(room); err != nil {
			return nil, err
		}
		updated, err := roomToRecord(room)
		if err != nil {
			return nil, err
		}
		result := s.db.Model(&db.GameRoom{}).
			Where("id = ? AND version = ?", id, record.Version).
			Updates(map[string]any{
				"status":          updated.Status,
				"current_round":   updated.CurrentRound,
				"player1_score":   updated.Player1Score,
				"player2_score":   updated.Player2Score,
				"player1_numbers": updated.Player1Numbers,
				"player2_numbers": updated.Player2Numbers,
				"player2_id":      updated.Player2ID,
				"player2_name":    updated.Player2Name,
				"winner_id":       updated.WinnerID,
				"version":         record.Version + 1,
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race; run fn again on the winner's state.
			continue
		}
		room.Version = record.Version + 1
		return room, nil
	}
	return nil, errors.New("room update contention limit reached")
}

func recordToRoom(record *db.GameRoom) (*Room, error) {
	p1Numbers, err := decodeNumbers(record.Player1Numbers)
	if err != nil {
		return nil, err
	}
	p2Numbers, err := decodeNumbers(record.Player2Numbers)
	if err != nil {
		return nil, err
	}
	room := &Room{
		ID:           record.ID,
		Name:         record.RoomName,
		Code:         record.RoomCode,
		Rounds:       record.Rounds,
		CurrentRound: record.CurrentRound,
		Status:       record.Status,
		Player1: PlayerSlot{
			ID:      record.Player1ID,
			Name:    record.Player1Name,
			Score:   record.Player1Score,
			Numbers: p1Numbers,
		},
		Version:   record.Version,
		CreatedAt: record.CreatedAt,
	}
	if record.Player2ID != nil {
		room.Player2 = PlayerSlot{
			ID:      *record.Player2ID,
			Score:   record.Player2Score,
			Numbers: p2Numbers,
		}
		if record.Player2Name != nil {
			room.Player2.Name = *record.Player2Name
		}
	}
	room.Winner = decodeWinner(record.WinnerID, room)
	return room, nil
}

func roomToRecord(room *Room) (*db.GameRoom, error) {
	p1Numbers, err := encodeNumbers(room.Player1.Numbers)
	if err != nil {
		return nil, err
	}
	p2Numbers, err := encodeNumbers(room.Player2.Numbers)
	if err != nil {
		return nil, err
	}
	record := &db.GameRoom{
		ID:             room.ID,
		RoomName:       room.Name,
		RoomCode:       room.Code,
		Rounds:         room.Rounds,
		CurrentRound:   room.CurrentRound,
		Status:         room.Status,
		Player1ID:      room.Player1.ID,
		Player1Name:    room.Player1.Name,
		Player1Score:   room.Player1.Score,
		Player1Numbers: p1Numbers,
		Player2Score:   room.Player2.Score,
		Player2Numbers: p2Numbers,
		Version:        room.Version,
		CreatedAt:      room.CreatedAt,
	}
	if room.hasPlayer2() {
		id := room.Player2.ID
		name := room.Player2.Name
		record.Player2ID = &id
		record.Player2Name = &name
	}
	if value := encodeWinner(room); value != nil {
		record.WinnerID = value
	}
	return record, nil
}

// decodeNumbers treats an empty or absent column as an empty sequence.
func decodeNumbers(raw datatypes.JSON) ([]int, error) {
	if len(raw) == 0 {
		return []int{}, nil
	}
	var numbers []int
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil, err
	}
	if numbers == nil {
		numbers = []int{}
	}
	return numbers, nil
}

func encodeNumbers(numbers []int) (datatypes.JSON, error) {
	if numbers == nil {
		numbers = []int{}
	}
	data, err := json.Marshal(numbers)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func decodeWinner(winnerID *string, room *Room) Winner {
	if winnerID == nil {
		return WinnerUnset
	}
	switch *winnerID {
	case winnerTieSentinel:
		return WinnerTie
	case room.Player1.ID:
		return WinnerPlayer1
	case room.Player2.ID:
		return WinnerPlayer2
	default:
		return WinnerUnset
	}
}

func encodeWinner(room *Room) *string {
	var value string
	switch room.Winner {
	case WinnerPlayer1:
		value = room.Player1.ID
	case WinnerPlayer2:
		value = room.Player2.ID
	case WinnerTie:
		value = winnerTieSentinel
	default:
		return nil
	}
	return &value
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
