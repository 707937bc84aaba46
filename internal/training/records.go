package training

import (
	"sort"
	"strings"

	"github.com/claude/repshape/internal/models"
)

// MaxRecords caps the personal record list.
const MaxRecords = 20

// PersonalRecord is the heaviest set ever logged for an exercise.
type PersonalRecord struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
	Volume float64 `json:"volume"`
}

// PersonalRecords scans every set once and keeps, per exercise name (trimmed,
// case-insensitive), the set with the highest weight. Only a strictly heavier
// set replaces the current record, so on equal weights the first one seen
// wins. Records are returned heaviest first, at most MaxRecords of them.
func PersonalRecords(workouts []models.Workout) []PersonalRecord {
	best := make(map[string]int)
	var records []PersonalRecord

	for _, w := range workouts {
		for _, ex := range w.Exercises {
			key := exerciseKey(ex.Name)
			for _, set := range ex.Sets {
				weight, reps := num(set.Weight), num(set.Reps)
				i, ok := best[key]
				if ok && weight <= records[i].Weight {
					continue
				}
				rec := PersonalRecord{Name: ex.Name, Weight: weight, Reps: reps, Volume: weight * reps}
				if ok {
					records[i] = rec
				} else {
					best[key] = len(records)
					records = append(records, rec)
				}
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Weight > records[j].Weight
	})
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return records
}

func exerciseKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
