package allocation

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// RandomSource returns a uniform integer in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// NewSource returns a goroutine-safe ChaCha8 source seeded from crypto/rand.
func NewSource() RandomSource {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return &lockedSource{rng: rand.New(rand.NewChaCha8(seed))}
}

// NewSeededSource is deterministic and meant for tests and replays.
func NewSeededSource(seed1, seed2 uint64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// shuffled returns a Fisher-Yates shuffled copy of items.
func shuffled[T any](items []T, src RandomSource) []T {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
