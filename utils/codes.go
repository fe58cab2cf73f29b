package utils

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReferralCode produces a "JOW"-prefixed share code. Collisions are rare
// but possible; callers re-roll against the code store.
func NewReferralCode() string {
	return "JOW" + randomString(8)
}

func randomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform entropy source is broken
			panic(err)
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}
