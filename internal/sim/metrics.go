package sim

import (
	"math/big"

	"github.com/san-kum/ratgrav/internal/exact"
)

// ClosestApproach is an Observer tracking the smallest squared separation
// between any two bodies over a run.
type ClosestApproach struct {
	min   exact.Rational
	pair  [2]string
	tick  int
	valid bool
}

func (c *ClosestApproach) OnTick(f Frame) {
	for i := 0; i < len(f.Bodies); i++ {
		for j := i + 1; j < len(f.Bodies); j++ {
			d2 := f.Bodies[i].Position.Sub(f.Bodies[j].Position).SquaredNorm()
			if !c.valid || d2.Cmp(c.min) < 0 {
				c.min = d2
				c.pair = [2]string{f.Bodies[i].Name, f.Bodies[j].Name}
				c.tick = f.Tick
				c.valid = true
			}
		}
	}
}

// Squared returns the exact smallest squared separation seen.
func (c *ClosestApproach) Squared() (exact.Rational, bool) { return c.min, c.valid }

// Distance returns the whole-number approximate separation.
func (c *ClosestApproach) Distance() *big.Int {
	r, _ := c.min.SqrtApprox()
	return r.Floor()
}

func (c *ClosestApproach) Pair() (a, b string) { return c.pair[0], c.pair[1] }

func (c *ClosestApproach) Tick() int { return c.tick }

func (c *ClosestApproach) Reset() { *c = ClosestApproach{} }
