package analysis

import (
	"sort"
	"strings"
	"time"

	"fitlog/internal/store"
)

// Canonical muscle groups, in classifier priority order. Every stats result
// contains all eight, zero-valued if unworked; GroupOther appears only when
// something actually fell through the classifier.
const (
	GroupChest     = "chest"
	GroupBack      = "back"
	GroupShoulders = "shoulders"
	GroupArms      = "arms"
	GroupLegs      = "legs"
	GroupCore      = "core"
	GroupGlutes    = "glutes"
	GroupCalves    = "calves"
	GroupOther     = "other"
)

// CanonicalGroups lists the eight always-present groups in display order.
var CanonicalGroups = []string{
	GroupChest, GroupBack, GroupShoulders, GroupArms,
	GroupLegs, GroupCore, GroupGlutes, GroupCalves,
}

// shoulderPhrases are checked before the keyword table. "press" alone is a
// chest keyword, so compound press names that actually target shoulders are
// pinned here; without this, "Shoulder Press" would classify as chest via
// "press" and "Incline Dumbbell Press" via the same rule, and only one of
// those is right.
var shoulderPhrases = []string{
	"shoulder press",
	"overhead press",
	"military press",
	"arnold press",
}

// groupKeywords maps each group to its inference keywords. Groups are
// evaluated in CanonicalGroups order and the first matching keyword wins, so
// keyword placement doubles as tie-break priority.
var groupKeywords = map[string][]string{
	GroupChest:     {"bench", "chest", "press", "fly", "flye", "push-up", "pushup", "push up", "dip"},
	GroupBack:      {"row", "pull-up", "pullup", "pull up", "pulldown", "pull-down", "lat ", "deadlift", "chin-up", "chinup", "back"},
	GroupShoulders: {"shoulder", "overhead", "military", "lateral raise", "front raise", "rear delt", "delt", "shrug", "face pull"},
	GroupArms:      {"curl", "tricep", "bicep", "extension", "skullcrusher", "skull crusher", "pushdown"},
	GroupLegs:      {"squat", "leg", "lunge", "hamstring", "quad", "step-up", "step up", "rdl"},
	GroupCore:      {"plank", "crunch", "sit-up", "situp", "sit up", "ab ", "abs", "core", "russian twist", "hollow", "dead bug", "mountain climber"},
	GroupGlutes:    {"glute", "hip thrust", "bridge", "kickback", "abduction"},
	GroupCalves:    {"calf", "calves"},
}

// InferMuscleGroup resolves an exercise to a muscle group. An explicit tag
// wins outright; otherwise the name is matched against the keyword table in
// canonical group order, first match wins. Unmatched names land in
// GroupOther.
func InferMuscleGroup(name, explicitTag string) string {
	if tag := strings.ToLower(strings.TrimSpace(explicitTag)); tag != "" {
		return tag
	}

	lower := strings.ToLower(name)
	for _, phrase := range shoulderPhrases {
		if strings.Contains(lower, phrase) {
			return GroupShoulders
		}
	}
	for _, group := range CanonicalGroups {
		for _, kw := range groupKeywords[group] {
			if strings.Contains(lower, kw) {
				return group
			}
		}
	}
	return GroupOther
}

// GroupStats aggregates one muscle group's work across the whole history.
type GroupStats struct {
	Group         string
	TotalSets     int
	TotalVolume   float64
	ExerciseCount int
	// Frequency counts distinct workout days that touched the group.
	Frequency  int
	LastWorked time.Time
}

// MuscleGroupStats aggregates completed work per muscle group. The result
// always contains the eight canonical groups (zero-valued when unworked), in
// canonical order, followed by GroupOther when anything fell through.
func MuscleGroupStats(history []store.Workout) []GroupStats {
	stats := map[string]*GroupStats{}
	days := map[string]map[string]struct{}{}
	for _, g := range CanonicalGroups {
		stats[g] = &GroupStats{Group: g}
		days[g] = map[string]struct{}{}
	}

	touch := func(group string) *GroupStats {
		if s, ok := stats[group]; ok {
			return s
		}
		stats[group] = &GroupStats{Group: group}
		days[group] = map[string]struct{}{}
		return stats[group]
	}

	for _, w := range history {
		day := w.CompletedAt.Format("2006-01-02")
		for _, ex := range w.Exercises {
			group := InferMuscleGroup(ex.Name, ex.MuscleGroup)
			s := touch(group)
			s.ExerciseCount++

			worked := false
			for _, set := range ex.Sets {
				if !set.Completed {
					continue
				}
				worked = true
				s.TotalSets++
				if set.Weight != nil && set.Reps != nil {
					s.TotalVolume += *set.Weight * float64(*set.Reps)
				}
			}
			if worked {
				days[group][day] = struct{}{}
				if w.CompletedAt.After(s.LastWorked) {
					s.LastWorked = w.CompletedAt
				}
			}
		}
	}

	out := make([]GroupStats, 0, len(stats))
	for _, g := range CanonicalGroups {
		stats[g].Frequency = len(days[g])
		out = append(out, *stats[g])
	}
	for group, s := range stats {
		if isCanonical(group) {
			continue
		}
		s.Frequency = len(days[group])
		out = append(out, *s)
	}
	return out
}

func isCanonical(group string) bool {
	for _, g := range CanonicalGroups {
		if g == group {
			return true
		}
	}
	return false
}

// Insights classifies muscle groups as strong or needing work relative to
// the mean across worked groups.
type Insights struct {
	Strong    []GroupStats
	NeedsWork []GroupStats
	Balanced  bool
}

const (
	strongFactor = 1.3
	weakFactor   = 0.5
	insightsTopN = 3
)

// MuscleGroupInsights compares each canonical group against the mean volume
// and mean frequency of the groups that have any completed sets. A group is
// strong when its volume or frequency exceeds 1.3x the mean, and needs work
// when it is unworked or falls below 0.5x the mean on either measure.
// Training is balanced iff at most two groups are strong and at most two
// need work.
func MuscleGroupInsights(stats []GroupStats) Insights {
	var worked []GroupStats
	for _, s := range stats {
		if !isCanonical(s.Group) {
			continue
		}
		if s.TotalSets > 0 {
			worked = append(worked, s)
		}
	}
	if len(worked) == 0 {
		return Insights{Balanced: true}
	}

	var meanVolume, meanFrequency float64
	for _, s := range worked {
		meanVolume += s.TotalVolume
		meanFrequency += float64(s.Frequency)
	}
	meanVolume /= float64(len(worked))
	meanFrequency /= float64(len(worked))

	var insights Insights
	for _, s := range stats {
		if !isCanonical(s.Group) {
			continue
		}
		switch {
		case s.TotalVolume > strongFactor*meanVolume || float64(s.Frequency) > strongFactor*meanFrequency:
			insights.Strong = append(insights.Strong, s)
		case s.TotalSets == 0 || s.TotalVolume < weakFactor*meanVolume || float64(s.Frequency) < weakFactor*meanFrequency:
			insights.NeedsWork = append(insights.NeedsWork, s)
		}
	}

	sort.SliceStable(insights.Strong, func(i, j int) bool {
		return insights.Strong[i].TotalVolume > insights.Strong[j].TotalVolume
	})
	sort.SliceStable(insights.NeedsWork, func(i, j int) bool {
		return insights.NeedsWork[i].TotalVolume < insights.NeedsWork[j].TotalVolume
	})

	insights.Balanced = len(insights.Strong) <= 2 && len(insights.NeedsWork) <= 2

	if len(insights.Strong) > insightsTopN {
		insights.Strong = insights.Strong[:insightsTopN]
	}
	if len(insights.NeedsWork) > insightsTopN {
		insights.NeedsWork = insights.NeedsWork[:insightsTopN]
	}
	return insights
}
