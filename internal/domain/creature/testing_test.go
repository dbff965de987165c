package creature

import (
	"strconv"

	"wildbound/internal/domain/world"
)

// seqRand replays fixed values and repeats the last one when exhausted.
type seqRand struct {
	ints   []int
	floats []float64
}

func (r *seqRand) IntN(n int) int {
	v := 0
	if len(r.ints) > 0 {
		v = r.ints[0]
		if len(r.ints) > 1 {
			r.ints = r.ints[1:]
		}
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *seqRand) Float64() float64 {
	v := 0.0
	if len(r.floats) > 0 {
		v = r.floats[0]
		if len(r.floats) > 1 {
			r.floats = r.floats[1:]
		}
	}
	return v
}

var _ world.Rand = (*seqRand)(nil)

func fixedIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func testFactory(r world.Rand) Factory {
	f := DefaultFactory()
	f.Rand = r
	f.NewID = fixedIDs("c")
	return f
}
