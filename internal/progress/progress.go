package progress

import "math"

// Compute returns the completion percentage for a set of tasks as an
// integer in [0, 100]. An entity with no tasks has 0 progress, not 100.
// Percentages round half up (75.5 -> 76).
func Compute(totalTasks, completedTasks int) int {
	if totalTasks <= 0 {
		return 0
	}
	if completedTasks < 0 {
		completedTasks = 0
	}
	if completedTasks > totalTasks {
		completedTasks = totalTasks
	}
	return int(math.Round(float64(completedTasks) / float64(totalTasks) * 100))
}
