package dice

import (
	"math/rand"
	"sync"
	"time"

	"dice-service/pkg/utils/random"
)

const DefaultDieFaces = 20

// CryptoDie rolls with crypto/rand.
type CryptoDie struct {
	Faces int

	fallbackOnce sync.Once
	fallback     *SeededDie
}

func NewCryptoDie(faces int) *CryptoDie {
	if faces < 1 {
		faces = DefaultDieFaces
	}
	return &CryptoDie{Faces: faces}
}

func (d *CryptoDie) RollDie() int {
	v, err := random.IntRange(1, d.Faces)
	if err == nil {
		return v
	}
	d.fallbackOnce.Do(func() {
		d.fallback = NewSeededDie(d.Faces, time.Now().UnixNano())
	})
	return d.fallback.RollDie()
}

// SeededDie is a deterministic roller for replays and tests.
type SeededDie struct {
	faces int
	mu    sync.Mutex
	rng   *rand.Rand
}

func NewSeededDie(faces int, seed int64) *SeededDie {
	if faces < 1 {
		faces = DefaultDieFaces
	}
	return &SeededDie{faces: faces, rng: rand.New(rand.NewSource(seed))}
}

func (d *SeededDie) RollDie() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(d.faces) + 1
}
