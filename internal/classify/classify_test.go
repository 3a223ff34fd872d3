package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nerja/internal/ratio"
)

func TestClassifyOrientation(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		name string
		w, h uint64
		want Result
	}{
		{"landscape", 2000, 1000, Result{HD: true, Orientation: Landscape}},
		{"portrait", 2000, 3000, Result{HD: true, Orientation: Portrait}},
		{"square", 2400, 2400, Result{HD: true, Orientation: Square}},
		{"at gate", 1920, 1080, Result{}},
		{"narrow portrait", 1000, 2000, Result{}},
		{"probe failed", 0, 0, Result{}},
		{"missing height", 2000, 0, Result{HD: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Classify(tc.w, tc.h))
		})
	}
}

func TestClassifyCustomGate(t *testing.T) {
	p := Policy{MinWidth: 100, MinRatio: 1, MaxRatio: 2}
	assert.Equal(t, Landscape, p.Classify(101, 100).Orientation)
	assert.False(t, p.Classify(100, 50).HD)
}

func TestIsWidescreenBand(t *testing.T) {
	p := DefaultPolicy()
	r := ratio.NewReducer()

	assert.True(t, p.IsWidescreen(r.Reduce(1920, 1080)), "16:9")
	assert.True(t, p.IsWidescreen(r.Reduce(2560, 1600)), "16:10 is the inclusive lower bound")
	assert.True(t, p.IsWidescreen(r.Reduce(3440, 1440)), "ultra-wide")
	assert.True(t, p.IsWidescreen(r.Reduce(2000, 1000)), "2:1")
	assert.True(t, p.IsWidescreen(r.Reduce(27, 10)), "upper bound is inclusive")

	assert.False(t, p.IsWidescreen(r.Reduce(4000, 3000)), "4:3")
	assert.False(t, p.IsWidescreen(r.Reduce(2100, 2000)), "near square")
	assert.False(t, p.IsWidescreen(r.Reduce(28, 10)), "above band")
	assert.False(t, p.IsWidescreen(ratio.Ratio{}))
}

func TestIsWidescreenMonotonic(t *testing.T) {
	p := DefaultPolicy()
	for num := uint64(100); num <= 400; num++ {
		rt := ratio.Ratio{Num: num, Den: 100}
		inside := rt.Float() >= p.MinRatio && rt.Float() <= p.MaxRatio
		assert.Equal(t, inside, p.IsWidescreen(rt), "%s", rt)
	}
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.Error(t, Policy{MinRatio: 0, MaxRatio: 2}.Validate())
	assert.Error(t, Policy{MinRatio: 2, MaxRatio: 1.5}.Validate())
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "widescreen", Category(true))
	assert.Equal(t, "normal", Category(false))
}
