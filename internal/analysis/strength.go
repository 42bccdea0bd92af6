package analysis

import (
	"sort"

	"fitlog/internal/store"
)

// Trend direction for strength progress between two periods.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// ExerciseProgress compares the max recorded weight for one exercise across
// two adjacent periods. Comparison is on weight only; rep counts are not
// normalized, so a heavy single and a lighter high-rep set compare purely on
// the bar.
type ExerciseProgress struct {
	Exercise      string
	CurrentMax    float64
	PreviousMax   float64
	Change        float64
	ChangePercent float64
	Trend         string
}

// StrengthProgress compares the max weight per exercise between the current
// period and the immediately preceding one. Exercises absent from the
// current period are dropped: an abandoned lift is not a trend. An exercise
// new to the current period reports changePercent 0, since there is no
// baseline to divide by.
func StrengthProgress(current, previous []store.Workout) []ExerciseProgress {
	currentMax := maxWeights(current)
	previousMax := maxWeights(previous)

	names := map[string]struct{}{}
	for name := range currentMax {
		names[name] = struct{}{}
	}
	for name := range previousMax {
		names[name] = struct{}{}
	}

	out := make([]ExerciseProgress, 0, len(names))
	for name := range names {
		cur := currentMax[name]
		if cur == 0 {
			continue
		}
		prev := previousMax[name]

		p := ExerciseProgress{
			Exercise:    name,
			CurrentMax:  cur,
			PreviousMax: prev,
			Change:      cur - prev,
		}
		if prev > 0 {
			p.ChangePercent = (cur - prev) / prev * 100
		}
		switch {
		case p.Change > 0:
			p.Trend = TrendUp
		case p.Change < 0:
			p.Trend = TrendDown
		default:
			p.Trend = TrendStable
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Change != out[j].Change {
			return out[i].Change > out[j].Change
		}
		return out[i].Exercise < out[j].Exercise
	})
	return out
}

// maxWeights returns the max completed-set weight per exercise name within
// one period.
func maxWeights(history []store.Workout) map[string]float64 {
	maxes := map[string]float64{}
	for _, w := range history {
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				if !s.Completed || s.Weight == nil || *s.Weight <= 0 {
					continue
				}
				if *s.Weight > maxes[ex.Name] {
					maxes[ex.Name] = *s.Weight
				}
			}
		}
	}
	return maxes
}

// ExerciseCount is an exercise name with its appearance count.
type ExerciseCount struct {
	Exercise string
	Count    int
}

// TopExercises counts appearances per exercise name across all workouts,
// descending, truncated to limit. Ties break alphabetically so the ranking
// is stable across calls.
func TopExercises(history []store.Workout, limit int) []ExerciseCount {
	counts := map[string]int{}
	for _, w := range history {
		for _, ex := range w.Exercises {
			counts[ex.Name]++
		}
	}

	out := make([]ExerciseCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, ExerciseCount{Exercise: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Exercise < out[j].Exercise
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
