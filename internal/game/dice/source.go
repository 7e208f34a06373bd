package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

// Intn panics when n <= 0 or the system random source fails.
func (cryptoSource) Intn(n int) int {
	checkBound(n)
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: reading crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

func checkBound(n int) {
	if n <= 0 {
		panic("dice: Intn bound must be positive")
	}
}

// seededSource implements Source with a deterministic generator.
type seededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a Source that yields the same sequence for the same
// seed, so a playthrough can be reproduced.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewSeededSource(seed int64) Source {
	return &seededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Intn panics when n <= 0.
func (s *seededSource) Intn(n int) int {
	checkBound(n)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
