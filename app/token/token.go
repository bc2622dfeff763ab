// Package token generates session tokens correlating a debug run with a viewer session.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Alphabet is the set of symbols a token is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the token length used by the viewer.
const DefaultLength = 16

// New returns a random token of n symbols from Alphabet.
func New(n int) (string, error) {
	if n < 1 {
		return "", errors.New("token length must be positive")
	}
	limit := big.NewInt(int64(len(Alphabet)))
	res := make([]byte, n)
	for i := range res {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}
		res[i] = Alphabet[idx.Int64()]
	}
	return string(res), nil
}
