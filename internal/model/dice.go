package model

import (
	"math/rand"
	"sync"
)

// Dice is the single source of randomness for all game formulas.
// It is injected rather than used ambiently so tests can seed it.
type Dice struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewDice(seed int64) *Dice {
	return &Dice{r: rand.New(rand.NewSource(seed))}
}

// Between returns a uniform integer in [lo, hi].
func (d *Dice) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return lo + d.r.Intn(hi-lo+1)
}

// Roll returns a uniform integer in [1, n].
func (d *Dice) Roll(n int) int {
	return d.Between(1, n)
}

// Float returns a uniform float in [0, 1).
func (d *Dice) Float() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Float64()
}

// Pick returns a uniform index in [0, n).
func (d *Dice) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Intn(n)
}
