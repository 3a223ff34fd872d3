package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want uint64
	}{
		{1920, 1080, 120},
		{2000, 1000, 1000},
		{7, 0, 7},
		{0, 7, 7},
		{17, 13, 1},
		{2560, 1600, 320},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GCD(tc.a, tc.b), "gcd(%d,%d)", tc.a, tc.b)
	}
}

func TestReduceLowestTerms(t *testing.T) {
	r := NewReducer()
	for _, dims := range [][2]uint64{
		{1920, 1080}, {2560, 1080}, {3840, 2160}, {2000, 1000}, {1921, 1080}, {4000, 3000}, {5, 5},
	} {
		got := r.Reduce(dims[0], dims[1])
		require.False(t, got.IsZero())
		assert.Equal(t, uint64(1), GCD(got.Num, got.Den), "%v not in lowest terms", got)
		assert.Equal(t, dims[0]*got.Den, dims[1]*got.Num, "%v changes the ratio of %v", got, dims)

		again := r.Reduce(got.Num, got.Den)
		assert.Equal(t, got, again, "reduce is not idempotent for %v", dims)
	}
}

func TestReduceKnownRatios(t *testing.T) {
	r := NewReducer()
	assert.Equal(t, "16:9", r.Reduce(1920, 1080).String())
	assert.Equal(t, "2:1", r.Reduce(2000, 1000).String())
	assert.Equal(t, "64:27", r.Reduce(2560, 1080).String())
	assert.InDelta(t, 2.0, r.Reduce(2000, 1000).Float(), 1e-9)
}

func TestReduceZero(t *testing.T) {
	r := NewReducer()
	assert.True(t, r.Reduce(0, 1080).IsZero())
	assert.True(t, r.Reduce(1920, 0).IsZero())
	assert.Equal(t, 0.0, Ratio{}.Float())
	assert.Equal(t, 0, r.Len())
}

func TestReducerCacheIsOrderInsensitive(t *testing.T) {
	r := NewReducer()
	r.Reduce(1920, 1080)
	r.Reduce(1080, 1920)
	r.Reduce(1920, 1080)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, r.Hits())
}

func TestQuantize(t *testing.T) {
	assert.Equal(t, uint64(1921), Quantize(1921, 0))
	assert.Equal(t, uint64(1900), Quantize(1921, 100))
	assert.Equal(t, uint64(1000), Quantize(1080, 100))
	assert.Equal(t, uint64(64), Quantize(64, 100))
}
