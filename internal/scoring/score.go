package scoring

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Category is the coarse glycemic-index classification of a meal.
type Category int

const (
	CategoryLow Category = iota
	CategoryMedium
	CategoryHigh
)

func (c Category) String() string {
	switch c {
	case CategoryHigh:
		return "high"
	case CategoryMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseCategory normalizes a glycemic-index label. Both the English and the
// legacy French spellings are accepted, case-insensitively. Anything else
// falls back to the low category rather than failing.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "élevé", "eleve":
		return CategoryHigh
	case "medium", "moyen":
		return CategoryMedium
	case "low", "faible":
		return CategoryLow
	default:
		return CategoryLow
	}
}

func (c Category) multiplier() float64 {
	switch c {
	case CategoryHigh:
		return 1.5
	case CategoryMedium:
		return 1.0
	default:
		return 0.5
	}
}

// Calculator converts meal data into a 0-100 glycemic score. The randomness
// used by the spike bands comes from the injected source so that tests can
// seed it.
type Calculator struct {
	rng *rand.Rand
}

// NewCalculator builds a Calculator. A nil source gets a time-seeded one.
func NewCalculator(src rand.Source) *Calculator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Calculator{rng: rand.New(src)}
}

// Score computes the glycemic score for a meal. When spike is non-nil and
// non-negative the score is drawn from the glucose-spike band; otherwise it is
// derived from carbohydrate grams and the index category.
func (c *Calculator) Score(carbsGrams float64, category Category, spike *float64) int {
	if spike != nil && *spike >= 0 {
		return clampScore(c.spikeScore(*spike))
	}
	return clampScore(macroScore(carbsGrams, category))
}

// spikeScore maps a post-minus-pre glucose excursion (mg/dL) onto a banded
// score. Smaller excursions land in higher, tighter bands. The intra-band
// randomness is intentional: the measurement itself is too coarse to justify
// a point value.
func (c *Calculator) spikeScore(spike float64) int {
	switch {
	case spike < 30:
		return c.rng.Intn(10) + 90 // 90-99
	case spike < 50:
		return c.rng.Intn(20) + 70 // 70-89
	case spike < 80:
		return c.rng.Intn(30) + 40 // 40-69
	default:
		return c.rng.Intn(40) // 0-39
	}
}

func macroScore(carbsGrams float64, category Category) int {
	if math.IsNaN(carbsGrams) || carbsGrams < 0 {
		carbsGrams = 0
	}
	return int(math.Round(100 - carbsGrams*category.multiplier()))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
