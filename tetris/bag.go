package tetris

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// bag implements the 7-bag randomizer: every kind is drawn once per
// shuffled set. A new set is appended whenever fewer than 2 pieces remain,
// so the queue is never empty when a piece is requested.
type bag struct {
	queue []Kind
	rng   *rand.Rand
}

func newBag(seed uint64) *bag {
	b := &bag{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	b.refill()
	return b
}

// next pops the front of the queue.
func (b *bag) next() Kind {
	b.refill()
	k := b.queue[0]
	b.queue = b.queue[1:]
	return k
}

// peek returns what next() would return without consuming it.
func (b *bag) peek() Kind {
	b.refill()
	return b.queue[0]
}

func (b *bag) refill() {
	if len(b.queue) >= 2 {
		return
	}
	set := Kinds
	b.rng.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	b.queue = append(b.queue, set[:]...)
}

// newSeed reads a seed from crypto/rand.
func newSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic("tetris: read random seed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}
