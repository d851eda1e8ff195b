package tokenstore

import (
	"crypto/sha256"
	"encoding/hex"
)

// key never contains the raw token, so a dump of the store cannot be
// replayed.
func key(purpose, token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + purpose + ":" + hex.EncodeToString(sum[:])
}
