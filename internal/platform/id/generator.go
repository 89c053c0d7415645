package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator produces opaque identifiers for new records.
type Generator interface {
	NewID() string
}

// RandomGenerator returns 32-char hex identifiers from crypto/rand.
type RandomGenerator struct{}

func (RandomGenerator) NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// InviteCodeGenerator returns short uppercase codes suited for sharing
// in chat. Alphabet avoids easily confused characters.
type InviteCodeGenerator struct{}

const inviteAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func (InviteCodeGenerator) NewID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(out)
}
