package rng

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Crypto draws from crypto/rand. Shuffles made with it cannot be replayed.
type Crypto struct{}

// Intn returns a random number in [0, n)
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// Seeded returns a generator that repeats the same sequence for the same seed
func Seeded(seed int64) Generator {
	return mrand.New(mrand.NewSource(seed)) // nolint:gosec
}
