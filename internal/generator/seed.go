package generator

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// SeedFor derives a deterministic RNG seed for one round of one room using
// HMAC(salt, roomID|round). Persisting the seed lets a board be rebuilt.
func SeedFor(salt, roomID string, round int) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(roomID))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.Itoa(round)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
