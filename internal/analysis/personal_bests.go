// Package analysis computes derived statistics over completed workout and
// cardio history. Everything here is a pure full recompute over immutable
// records; history sizes are hundreds of entries, not millions, so no
// incremental aggregates are maintained. Empty input always yields empty
// output, never an error.
package analysis

import (
	"sort"
	"time"

	"fitlog/internal/store"
)

// PersonalBest is the single best set ever recorded for one exercise,
// ranked by volume (weight times reps).
type PersonalBest struct {
	Exercise string
	Weight   float64
	Reps     int
	Volume   float64
	Date     time.Time
}

// PersonalBests scans the full workout history and returns the best set per
// exercise, sorted descending by volume. Only completed sets with a positive
// weight and a rep count qualify. Ties on volume go to the higher weight,
// then to the more recent workout.
func PersonalBests(history []store.Workout) []PersonalBest {
	best := map[string]PersonalBest{}

	for _, w := range history {
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				if !s.Completed || s.Weight == nil || *s.Weight <= 0 || s.Reps == nil {
					continue
				}
				candidate := PersonalBest{
					Exercise: ex.Name,
					Weight:   *s.Weight,
					Reps:     *s.Reps,
					Volume:   *s.Weight * float64(*s.Reps),
					Date:     w.CompletedAt,
				}
				current, ok := best[ex.Name]
				if !ok || beats(candidate, current) {
					best[ex.Name] = candidate
				}
			}
		}
	}

	out := make([]PersonalBest, 0, len(best))
	for _, pb := range best {
		out = append(out, pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Exercise < out[j].Exercise
	})
	return out
}

func beats(a, b PersonalBest) bool {
	if a.Volume != b.Volume {
		return a.Volume > b.Volume
	}
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	return a.Date.After(b.Date)
}
