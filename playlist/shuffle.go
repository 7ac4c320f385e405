package playlist

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samber/mo"
)

// Permutation draws a uniformly random ordering of [0, n) with Fisher-Yates.
func Permutation(r *rand.Rand, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// random returns the generator, seeding it from the wall clock the first time when no seed was set.
func (p *Playlist) random() *rand.Rand {
	if p.rng != nil {
		return p.rng
	}

	seed := p.seed.OrElse(uint64(time.Now().UnixNano()))
	p.seed = mo.Some(seed)
	p.rng = newRand(seed)
	return p.rng
}

// reshuffle draws the permutation of a new pass over n items.
func (p *Playlist) reshuffle(n int) {
	p.perm = Permutation(p.random(), n)
	p.permPos = 0
}

// reshuffleFrom draws a pass that starts at position cur, which is then already used.
func (p *Playlist) reshuffleFrom(cur, n int) {
	p.reshuffle(n)
	if i := slices.Index(p.perm, cur); i >= 0 {
		p.perm[0], p.perm[i] = p.perm[i], p.perm[0]
		p.permPos = 1
	}
}
