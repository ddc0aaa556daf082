package server

import (
	"crypto/rand"

	"github.com/google/uuid"
)

func newRoomID() string {
	return uuid.NewString()
}

// newRoomCode builds a 6-character shareable code. The alphabet drops the
// lookalike characters 0/O and 1/I.
func newRoomCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAAA"
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
