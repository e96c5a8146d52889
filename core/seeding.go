package core

import (
	"fmt"
	"math/rand"
)

type SeedingMode int

const (
	// Shuffle all participants
	SeedRandom SeedingMode = iota
	// Keep the given order as the seed order
	SeedSingle
	// Keep the top 2 seeds and shuffle the following
	// seed tiers (3-4, 5-8, 9-16, ...) among themselves
	SeedTiered
)

func (m SeedingMode) String() string {
	switch m {
	case SeedRandom:
		return "random"
	case SeedSingle:
		return "single"
	case SeedTiered:
		return "tiered"
	}
	return fmt.Sprintf("SeedingMode(%d)", int(m))
}

func ParseSeedingMode(s string) (SeedingMode, error) {
	switch s {
	case "random":
		return SeedRandom, nil
	case "single", "":
		return SeedSingle, nil
	case "tiered":
		return SeedTiered, nil
	}
	return 0, fmt.Errorf("unknown seeding mode %q", s)
}

// SeedParticipants puts the participant tokens into seed order.
// The slice is shuffled in place according to the mode.
func SeedParticipants[S ~[]E, E any](slice S, mode SeedingMode, rng *rand.Rand) {
	switch mode {
	case SeedRandom:
		shuffle(slice, rng)
	case SeedTiered:
		tieredShuffle(slice, rng)
	}
}

// SeededShuffle is SeedParticipants with an rng created
// from the given seed.
func SeededShuffle[S ~[]E, E any](slice S, mode SeedingMode, rngSeed int64) {
	if mode == SeedSingle {
		return
	}
	SeedParticipants(slice, mode, rand.New(rand.NewSource(rngSeed)))
}

func tieredShuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	for start := 2; start < len(slice); start *= 2 {
		end := min(len(slice), 2*start)
		shuffle(slice[start:end], rng)
	}
}

func shuffle[S ~[]E, E any](slice S, rng *rand.Rand) {
	rng.Shuffle(
		len(slice),
		func(i, j int) { slice[i], slice[j] = slice[j], slice[i] },
	)
}
