package choice

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// NotFound is returned by IndexOf when an option is not part of the Choice.
const NotFound = -1

var (
	ErrExhaustedOptions = errors.New("no options left after exclusion")
	ErrInvalidWeight    = errors.New("invalid weight")
	ErrNoOptions        = errors.New("no options")
	ErrDuplicateOption  = errors.New("duplicate option")
)

// Source is the randomness a Choice draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Weighted pairs an option with its relative weight.
type Weighted[T comparable] struct {
	Value  T       `json:"value" yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Option configures a Choice at construction.
type Option func(*options)

type options struct {
	src Source
}

// WithSource sets the randomness source. A nil source keeps the default.
func WithSource(src Source) Option {
	return func(o *options) {
		if src != nil {
			o.src = src
		}
	}
}

// Choice is an immutable titled option set. The zero value is not usable;
// build one with NewUniform or NewWeighted.
type Choice[T comparable] struct {
	title   string
	options []T
	weights []float64 // nil for a uniform choice
	src     Source
}

// NewUniform builds a Choice whose options are drawn with equal probability.
func NewUniform[T comparable](title string, opts []T, setters ...Option) (*Choice[T], error) {
	if len(opts) == 0 {
		return nil, fmt.Errorf("%s: %w", title, ErrNoOptions)
	}
	if err := checkDistinct(title, opts); err != nil {
		return nil, err
	}

	return &Choice[T]{
		title:   title,
		options: append([]T(nil), opts...),
		src:     buildOptions(setters).src,
	}, nil
}

// NewWeighted builds a Choice whose options are drawn proportionally to
// their weights. Weights must be finite and strictly positive; they do not
// need to sum to 1.
func NewWeighted[T comparable](title string, entries []Weighted[T], setters ...Option) (*Choice[T], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", title, ErrNoOptions)
	}

	opts := make([]T, 0, len(entries))
	weights := make([]float64, 0, len(entries))
	for _, e := range entries {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight <= 0 {
			return nil, fmt.Errorf("%s: %w: %v has weight %v", title, ErrInvalidWeight, e.Value, e.Weight)
		}
		opts = append(opts, e.Value)
		weights = append(weights, e.Weight)
	}
	if err := checkDistinct(title, opts); err != nil {
		return nil, err
	}

	return &Choice[T]{
		title:   title,
		options: opts,
		weights: weights,
		src:     buildOptions(setters).src,
	}, nil
}

func buildOptions(setters []Option) options {
	o := options{src: globalSource{}}
	for _, set := range setters {
		set(&o)
	}
	return o
}

func checkDistinct[T comparable](title string, opts []T) error {
	seen := make(map[T]struct{}, len(opts))
	for _, o := range opts {
		if _, dup := seen[o]; dup {
			return fmt.Errorf("%s: %w: %v", title, ErrDuplicateOption, o)
		}
		seen[o] = struct{}{}
	}
	return nil
}

// Title returns the name the Choice was built with.
func (c *Choice[T]) Title() string { return c.title }

// Len returns the number of options.
func (c *Choice[T]) Len() int { return len(c.options) }

// IsWeighted reports whether draws are weight-proportional.
func (c *Choice[T]) IsWeighted() bool { return c.weights != nil }

// Options returns a copy of the options in construction order.
func (c *Choice[T]) Options() []T {
	return append([]T(nil), c.options...)
}

// OptionAt returns the option at index i in construction order.
func (c *Choice[T]) OptionAt(i int) (T, bool) {
	if i < 0 || i >= len(c.options) {
		var zero T
		return zero, false
	}
	return c.options[i], true
}

// IndexOf returns the position of opt, or NotFound.
func (c *Choice[T]) IndexOf(opt T) int {
	for i, o := range c.options {
		if o == opt {
			return i
		}
	}
	return NotFound
}

// Select draws one option that is not in exclude. Every call is an
// independent draw from the Choice's source.
func (c *Choice[T]) Select(exclude ...T) (T, error) {
	var zero T

	avail := c.available(exclude)
	if len(avail) == 0 {
		return zero, fmt.Errorf("%s: %w", c.title, ErrExhaustedOptions)
	}

	if c.weights == nil {
		return c.options[avail[c.src.IntN(len(avail))]], nil
	}

	total := 0.0
	for _, i := range avail {
		total += c.weights[i]
	}
	r := c.src.Float64() * total
	for _, i := range avail {
		r -= c.weights[i]
		if r < 0 {
			return c.options[i], nil
		}
	}
	// Rounding can leave r at a tiny non-negative value.
	return c.options[avail[len(avail)-1]], nil
}

// Probabilities returns the chance of drawing each remaining option when
// exclude is applied.
func (c *Choice[T]) Probabilities(exclude ...T) (map[T]float64, error) {
	avail := c.available(exclude)
	if len(avail) == 0 {
		return nil, fmt.Errorf("%s: %w", c.title, ErrExhaustedOptions)
	}

	probs := make(map[T]float64, len(avail))
	if c.weights == nil {
		p := 1 / float64(len(avail))
		for _, i := range avail {
			probs[c.options[i]] = p
		}
		return probs, nil
	}

	total := 0.0
	for _, i := range avail {
		total += c.weights[i]
	}
	for _, i := range avail {
		probs[c.options[i]] = c.weights[i] / total
	}
	return probs, nil
}

// available returns the indexes of options not in exclude.
func (c *Choice[T]) available(exclude []T) []int {
	idx := make([]int, 0, len(c.options))
	if len(exclude) == 0 {
		for i := range c.options {
			idx = append(idx, i)
		}
		return idx
	}

	skip := make(map[T]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	for i, o := range c.options {
		if _, ok := skip[o]; !ok {
			idx = append(idx, i)
		}
	}
	return idx
}
