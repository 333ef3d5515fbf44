package pkg

import (
	"crypto/rand"
	"io"
	"math/big"
	mathrand "math/rand"

	"github.com/google/uuid"
)

// RoomCodeLength is the fixed length of a human-shareable room code.
const RoomCodeLength = 6

// roomCodeAlphabet is the 36-symbol alphabet room codes are drawn from.
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSessionID - generates a new unique identity for a connection.
func GenerateSessionID() string {
	return uuid.NewString()
}

// GenerateRoomCode - draws a candidate room code uniformly from the
// alphabet. Uniqueness against live rooms is the registry's job. A broken
// entropy source falls back to the seeded generator rather than failing,
// so a full-length code always comes back.
func GenerateRoomCode() string {
	buf := make([]byte, RoomCodeLength)
	for i := range buf {
		buf[i] = roomCodeAlphabet[randomIndex(len(roomCodeAlphabet))]
	}

	return string(buf)
}

var entropy io.Reader = rand.Reader

func randomIndex(limit int) int {
	n, err := rand.Int(entropy, big.NewInt(int64(limit)))
	if err != nil {
		return mathrand.Intn(limit)
	}

	return int(n.Int64())
}
