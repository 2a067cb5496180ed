package credentials

import (
	"crypto/rand"
	"math/big"
)

// Lowercase alphanumerics without look-alikes; guests read these off a screen
// and type them into the hotspot login.
const alphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// Generator produces hotspot credential pairs.
type Generator interface {
	Generate() (username, secret string, err error)
}

// TokenGenerator draws both halves of the pair from crypto/rand.
type TokenGenerator struct {
	length int
}

func NewTokenGenerator(length int) *TokenGenerator {
	if length < 4 {
		length = 4
	}
	return &TokenGenerator{length: length}
}

func (g *TokenGenerator) Generate() (string, string, error) {
	username, err := token(g.length)
	if err != nil {
		return "", "", err
	}
	secret, err := token(g.length)
	if err != nil {
		return "", "", err
	}
	return username, secret, nil
}

func token(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
