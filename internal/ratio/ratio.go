package ratio

import "fmt"

// Ratio is a width:height pair in lowest terms.
type Ratio struct {
	Num uint64
	Den uint64
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// Float returns Num/Den, or 0 for the zero Ratio.
func (r Ratio) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Ratio) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

// GCD computes the greatest common divisor with Euclid's algorithm.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// pair is the cache key. lo <= hi, so (a,b) and (b,a) share an entry.
type pair struct {
	lo, hi uint64
}

func newPair(a, b uint64) pair {
	if a > b {
		a, b = b, a
	}
	return pair{lo: a, hi: b}
}

// Reducer reduces dimensions to lowest terms and memoizes the divisors it
// has already computed. One Reducer lives for one scan; it is not safe for
// concurrent use.
type Reducer struct {
	cache map[pair]uint64
	hits  int
}

func NewReducer() *Reducer {
	return &Reducer{cache: make(map[pair]uint64)}
}

// Reduce returns (a/g, b/g) where g = gcd(a, b). Either input being zero
// yields the zero Ratio.
func (r *Reducer) Reduce(a, b uint64) Ratio {
	if a == 0 || b == 0 {
		return Ratio{}
	}
	g := r.gcd(a, b)
	return Ratio{Num: a / g, Den: b / g}
}

func (r *Reducer) gcd(a, b uint64) uint64 {
	key := newPair(a, b)
	if g, ok := r.cache[key]; ok {
		r.hits++
		return g
	}
	g := GCD(a, b)
	r.cache[key] = g
	return g
}

// Len reports how many distinct pairs are cached.
func (r *Reducer) Len() int {
	return len(r.cache)
}

// Hits reports how many Reduce calls were answered from the cache.
func (r *Reducer) Hits() int {
	return r.hits
}

// Quantize floors v to a multiple of step. A step of 0, or a result that
// would be 0, leaves v unchanged.
func Quantize(v, step uint64) uint64 {
	if step == 0 {
		return v
	}
	q := (v / step) * step
	if q == 0 {
		return v
	}
	return q
}
