package optimizer

import (
	"math"
	"math/rand"
	"sort"

	"github.com/iwvelando/startup-forecast/pkg/mathutil"
)

// Sampler proposes knot vectors within per-dimension bounds. Strategies are
// interchangeable behind this interface so the scoring and feasibility logic
// is independent of how candidates are drawn; given a fixed seed and a fixed
// call order, every implementation must be fully deterministic.
type Sampler interface {
	// Next draws the next candidate knot vector.
	Next() []float64
	// Observe feeds back a completed trial so adaptive strategies can
	// refine their proposal distribution. Uniform strategies ignore it.
	Observe(params []float64, score float64, feasible bool)
}

// Sampler strategy names recognized in Options.
const (
	SamplerRandom   = "random"
	SamplerAdaptive = "adaptive"
)

// RandomSampler draws every dimension uniformly within bounds.
type RandomSampler struct {
	rng  *rand.Rand
	lows []float64
	high []float64
}

// NewRandomSampler constructs a seeded uniform sampler.
func NewRandomSampler(seed int64, lows, highs []float64) *RandomSampler {
	return &RandomSampler{
		rng:  rand.New(rand.NewSource(seed)),
		lows: lows,
		high: highs,
	}
}

// Next draws a uniform knot vector.
func (s *RandomSampler) Next() []float64 {
	params := make([]float64, len(s.lows))
	for i := range params {
		params[i] = s.lows[i] + s.rng.Float64()*(s.high[i]-s.lows[i])
	}
	return params
}

// Observe is a no-op for uniform sampling.
func (s *RandomSampler) Observe([]float64, float64, bool) {}

type scoredParams struct {
	params []float64
	score  float64
}

// AdaptiveSampler is a cross-entropy style strategy: it starts uniform,
// then proposes from a normal distribution fitted to the best observed
// trials, clamped to bounds. Every eighth draw stays uniform to keep
// exploring the full box.
type AdaptiveSampler struct {
	rng    *rand.Rand
	lows   []float64
	high   []float64
	warmup int
	elites []scoredParams
	drawn  int
}

// adaptive sampler tuning
const (
	adaptiveEliteSize    = 20
	adaptiveExploreEvery = 8
	adaptiveMinStdFrac   = 0.05
)

// NewAdaptiveSampler constructs a seeded adaptive sampler. The first warmup
// draws are uniform to seed the elite set.
func NewAdaptiveSampler(seed int64, lows, highs []float64, warmup int) *AdaptiveSampler {
	if warmup < adaptiveEliteSize {
		warmup = adaptiveEliteSize
	}
	return &AdaptiveSampler{
		rng:    rand.New(rand.NewSource(seed)),
		lows:   lows,
		high:   highs,
		warmup: warmup,
	}
}

// Next draws uniformly during warmup and on exploration draws, otherwise
// from the elite-fitted distribution.
func (s *AdaptiveSampler) Next() []float64 {
	s.drawn++
	if len(s.elites) < 2 || s.drawn <= s.warmup || s.drawn%adaptiveExploreEvery == 0 {
		return s.uniform()
	}

	params := make([]float64, len(s.lows))
	for i := range params {
		mean, std := s.eliteMoments(i)
		params[i] = mathutil.Clamp(mean+std*s.rng.NormFloat64(), s.lows[i], s.high[i])
	}
	return params
}

// Observe keeps the top-scoring trials as the elite set.
func (s *AdaptiveSampler) Observe(params []float64, score float64, feasible bool) {
	if !feasible {
		return
	}
	s.elites = append(s.elites, scoredParams{params: params, score: score})
	sort.SliceStable(s.elites, func(i, j int) bool {
		return s.elites[i].score > s.elites[j].score
	})
	if len(s.elites) > adaptiveEliteSize {
		s.elites = s.elites[:adaptiveEliteSize]
	}
}

func (s *AdaptiveSampler) uniform() []float64 {
	params := make([]float64, len(s.lows))
	for i := range params {
		params[i] = s.lows[i] + s.rng.Float64()*(s.high[i]-s.lows[i])
	}
	return params
}

func (s *AdaptiveSampler) eliteMoments(dim int) (mean, std float64) {
	for _, e := range s.elites {
		mean += e.params[dim]
	}
	mean /= float64(len(s.elites))

	var variance float64
	for _, e := range s.elites {
		diff := e.params[dim] - mean
		variance += diff * diff
	}
	variance /= float64(len(s.elites))
	std = math.Sqrt(variance)

	// Keep a minimum spread so the search never collapses to a point.
	minStd := adaptiveMinStdFrac * (s.high[dim] - s.lows[dim])
	if std < minStd {
		std = minStd
	}
	return mean, std
}
