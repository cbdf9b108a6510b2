package stats

// Snapshot is a single consistent read of a user's goal and task
// counters. It is the input to achievement evaluation, so the counts
// must come from one point in time.
type Snapshot struct {
	TotalGoals        int `json:"totalGoals"`
	ActiveGoals       int `json:"activeGoals"`
	CompletedGoals    int `json:"completedGoals"`
	PausedGoals       int `json:"pausedGoals"`
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	SuccessRate       int `json:"successRate"`
	AvgCompletionTime int `json:"avgCompletionTime"` // days, floor of the mean
}

type ProgressStats struct {
	TotalGoals        int `json:"totalGoals"`
	CompletedGoals    int `json:"completedGoals"`
	ActiveGoals       int `json:"activeGoals"`
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	CurrentStreak     int `json:"currentStreak"`
	LongestStreak     int `json:"longestStreak"`
	ThisWeekProgress  int `json:"thisWeekProgress"`
	AvgCompletionTime int `json:"avgCompletionTime"`
}

// DashboardStats is the lightweight counters card.
type DashboardStats struct {
	ActiveGoalsCount    int `json:"activeGoalsCount"`
	CompletedTasksCount int `json:"completedTasksCount"`
	SuccessRate         int `json:"successRate"`
}

type CategoryPerformance struct {
	Name              string  `json:"name"`
	Count             int     `json:"count"`
	CompletedGoals    int     `json:"completedGoals"`
	SuccessRate       int     `json:"successRate"`
	AvgTimeToComplete float64 `json:"avgTimeToComplete"` // days
}

type ProductivityPattern struct {
	DayOfWeek      string `json:"dayOfWeek"`
	TasksCompleted int    `json:"tasksCompleted"`
	CompletionRate int    `json:"completionRate"`
}
