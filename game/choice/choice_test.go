package choice

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestNewUniform(t *testing.T) {
	c, err := NewUniform("letters", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "letters", c.Title())
	assert.Equal(t, 3, c.Len())
	assert.False(t, c.IsWeighted())
}

func TestNewUniform_Invalid(t *testing.T) {
	_, err := NewUniform("empty", []string{})
	assert.ErrorIs(t, err, ErrNoOptions)

	_, err = NewUniform("dups", []string{"a", "b", "a"})
	assert.ErrorIs(t, err, ErrDuplicateOption)
}

func TestNewWeighted_InvalidWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
	}{
		{"zero", 0},
		{"negative", -0.5},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewWeighted("dirs", []Weighted[string]{
				{Value: "forward", Weight: 1},
				{Value: "backward", Weight: test.weight},
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidWeight)
			assert.Contains(t, err.Error(), "dirs")
		})
	}
}

func TestNewWeighted_Duplicate(t *testing.T) {
	_, err := NewWeighted("dirs", []Weighted[string]{
		{Value: "forward", Weight: 1},
		{Value: "forward", Weight: 2},
	})
	assert.ErrorIs(t, err, ErrDuplicateOption)
}

func TestSelect_NeverReturnsExcluded(t *testing.T) {
	opts := []int{1, 2, 3, 4, 5, 6}
	uniform, err := NewUniform("uniform", opts, WithSource(seeded(7)))
	require.NoError(t, err)

	entries := make([]Weighted[int], 0, len(opts))
	for i, o := range opts {
		entries = append(entries, Weighted[int]{Value: o, Weight: float64(i + 1)})
	}
	weighted, err := NewWeighted("weighted", entries, WithSource(seeded(11)))
	require.NoError(t, err)

	excludes := [][]int{
		nil,
		{1},
		{2, 4, 6},
		{1, 2, 3, 4, 5},
		{6, 5, 4, 3, 2},
		{99},
	}

	for _, c := range []*Choice[int]{uniform, weighted} {
		for _, exclude := range excludes {
			for i := 0; i < 500; i++ {
				got, err := c.Select(exclude...)
				require.NoError(t, err)
				assert.NotContains(t, exclude, got, "%s returned excluded option", c.Title())
				assert.Contains(t, opts, got)
			}
		}
	}
}

func TestSelect_Exhausted(t *testing.T) {
	c, err := NewWeighted("direction", []Weighted[string]{
		{Value: "forward", Weight: 0.3},
		{Value: "backward", Weight: 0.1},
	})
	require.NoError(t, err)

	_, err = c.Select("forward", "backward")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExhaustedOptions))
	assert.Contains(t, err.Error(), "direction")

	u, err := NewUniform("heads", []string{"truth"})
	require.NoError(t, err)
	_, err = u.Select("truth")
	assert.ErrorIs(t, err, ErrExhaustedOptions)
}

func TestSelect_SingleRemaining(t *testing.T) {
	c, err := NewWeighted("direction", []Weighted[string]{
		{Value: "forward", Weight: 0.3},
		{Value: "backward", Weight: 0.1},
		{Value: "up", Weight: 0.15},
	}, WithSource(seeded(3)))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		got, err := c.Select("forward", "up")
		require.NoError(t, err)
		assert.Equal(t, "backward", got)
	}
}

func TestSelect_WeightedDistribution(t *testing.T) {
	c, err := NewWeighted("skewed", []Weighted[string]{
		{Value: "heavy", Weight: 3},
		{Value: "light", Weight: 1},
	}, WithSource(seeded(42)))
	require.NoError(t, err)

	const draws = 20000
	heavy := 0
	for i := 0; i < draws; i++ {
		got, err := c.Select()
		require.NoError(t, err)
		if got == "heavy" {
			heavy++
		}
	}

	ratio := float64(heavy) / draws
	assert.InDelta(t, 0.75, ratio, 0.03)
}

func TestSelect_UniformDistribution(t *testing.T) {
	c, err := NewUniform("heads", []string{"truth", "lie", "repeat"}, WithSource(seeded(5)))
	require.NoError(t, err)

	const draws = 30000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		got, err := c.Select("repeat")
		require.NoError(t, err)
		counts[got]++
	}

	assert.Zero(t, counts["repeat"])
	assert.InDelta(t, 0.5, float64(counts["truth"])/draws, 0.03)
	assert.InDelta(t, 0.5, float64(counts["lie"])/draws, 0.03)
}

func TestSelect_SeededIsDeterministic(t *testing.T) {
	build := func() *Choice[string] {
		c, err := NewWeighted("dirs", []Weighted[string]{
			{Value: "a", Weight: 1},
			{Value: "b", Weight: 2},
			{Value: "c", Weight: 3},
		}, WithSource(seeded(99)))
		require.NoError(t, err)
		return c
	}

	first, second := build(), build()
	var a, b []string
	for i := 0; i < 100; i++ {
		x, err := first.Select()
		require.NoError(t, err)
		y, err := second.Select()
		require.NoError(t, err)
		a = append(a, x)
		b = append(b, y)
	}

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seeded sequences differ (-first +second):\n%s", diff)
	}
}

func TestOptionAtAndIndexOf(t *testing.T) {
	c, err := NewUniform("heads", []string{"truth", "lie", "repeat"})
	require.NoError(t, err)

	assert.Equal(t, 1, c.IndexOf("lie"))
	assert.Equal(t, NotFound, c.IndexOf("whisper"))

	got, ok := c.OptionAt(2)
	assert.True(t, ok)
	assert.Equal(t, "repeat", got)

	_, ok = c.OptionAt(3)
	assert.False(t, ok)
	_, ok = c.OptionAt(-1)
	assert.False(t, ok)
}

func TestOptions_ReturnsCopy(t *testing.T) {
	c, err := NewUniform("letters", []string{"a", "b"})
	require.NoError(t, err)

	opts := c.Options()
	opts[0] = "z"
	assert.Equal(t, 0, c.IndexOf("a"))
}

func TestProbabilities(t *testing.T) {
	c, err := NewWeighted("dirs", []Weighted[string]{
		{Value: "forward", Weight: 0.3},
		{Value: "backward", Weight: 0.1},
		{Value: "up", Weight: 0.1},
	})
	require.NoError(t, err)

	probs, err := c.Probabilities("backward")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, probs["forward"], 1e-9)
	assert.InDelta(t, 0.25, probs["up"], 1e-9)
	_, ok := probs["backward"]
	assert.False(t, ok)

	_, err = c.Probabilities("forward", "backward", "up")
	assert.ErrorIs(t, err, ErrExhaustedOptions)

	u, err := NewUniform("letters", []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	probs, err = u.Probabilities("d")
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, probs["a"], 1e-9)
}
