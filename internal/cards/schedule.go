// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cards

import (
	"time"

	"github.com/mindmesh/study-engine/pkg/types"
)

// reviewIntervals maps a difficulty to the gaps, in days, between
// consecutive reviews. Harder cards repeat sooner and more often early on.
var reviewIntervals = map[types.Difficulty][]int{
	types.DifficultyEasy:   {1, 3, 7, 14, 30},
	types.DifficultyMedium: {1, 2, 5, 10, 21},
	types.DifficultyHard:   {1, 1, 3, 7, 14},
}

// buildSchedule lays out the review sequence for a card created at the
// given time. Intervals accumulate so due dates are strictly increasing
// even when adjacent gaps are equal.
func buildSchedule(difficulty types.Difficulty, createdAt time.Time) []types.ReviewEntry {
	intervals, ok := reviewIntervals[difficulty]
	if !ok {
		intervals = reviewIntervals[types.DifficultyMedium]
	}

	schedule := make([]types.ReviewEntry, 0, len(intervals))
	days := 0
	for i, gap := range intervals {
		days += gap
		schedule = append(schedule, types.ReviewEntry{
			ReviewNumber: i + 1,
			DueDate:      createdAt.AddDate(0, 0, days),
			Completed:    false,
		})
	}
	return schedule
}

// difficultyFor buckets a keyword score into a difficulty. Well-supported
// terms are easier to recall, so they review on the slowest cadence.
func difficultyFor(score float64) types.Difficulty {
	switch {
	case score > 0.5:
		return types.DifficultyEasy
	case score > 0.2:
		return types.DifficultyMedium
	default:
		return types.DifficultyHard
	}
}
