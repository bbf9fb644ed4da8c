package searcher

import "math"

type uct struct {
	c   float64
	lnN float64
}

func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, lnN: math.Log(float64(N))}
}

// evaluate scores a child with exploitation q (already signed for the player
// choosing) and n visits. Unvisited children take priority over everything.
func (u uct) evaluate(q float64, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	// UCT = q + c*sqrt(ln(N)/n)
	return q + u.c*math.Sqrt(u.lnN/float64(n))
}

// isClose follows math.isclose: a relative tolerance with a tiny absolute
// floor, and exact equality for infinities.
func isClose(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= max(Tolerance*max(math.Abs(a), math.Abs(b)), absTolerance)
}
