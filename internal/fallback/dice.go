// Package fallback synthesises plausible analysis results when no remote
// model answered. Data lives in lookup tables keyed by category; the
// classifiers that pick a key are separate, exported functions.
package fallback

import (
	"math/rand/v2"
	"time"
)

// Dice supplies the small amount of variation mixed into generated results.
// Seed picks among near-duplicate variants, Jitter perturbs confidence.
type Dice struct {
	Seed   func() int     // 0..9
	Jitter func() float64 // [0,1)
}

// NewDice derives the seed from the wall clock (milliseconds modulo 10).
func NewDice(now func() time.Time) Dice {
	return Dice{
		Seed:   func() int { return int(now().UnixMilli() % 10) },
		Jitter: rand.Float64,
	}
}

// Fixed returns deterministic dice, mostly for tests and reproducible CLI runs.
func Fixed(seed int, jitter float64) Dice {
	return Dice{
		Seed:   func() int { return seed },
		Jitter: func() float64 { return jitter },
	}
}

func clone(s []string) []string { return append([]string(nil), s...) }
