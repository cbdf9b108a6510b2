package achievement

// Catalog is the fixed set of achievement definitions. It is seeded into
// the store once, keyed by stable id, so re-seeding and concurrent
// first-runs are no-ops.
var Catalog = []Definition{
	{
		ID:           "first_goal",
		Title:        "Goal Setter",
		Description:  "Created your first SMART goal",
		Icon:         "🎯",
		Category:     "goals",
		TriggerType:  TriggerGoalCount,
		TriggerValue: 1,
		IsActive:     true,
	},
	{
		ID:           "goal_achiever",
		Title:        "Goal Achiever",
		Description:  "Complete your first goal",
		Icon:         "🏆",
		Category:     "goals",
		TriggerType:  TriggerCompletedGoalCount,
		TriggerValue: 1,
		IsActive:     true,
	},
	{
		ID:           "goal_master",
		Title:        "Goal Master",
		Description:  "Complete 5 goals",
		Icon:         "👑",
		Category:     "goals",
		TriggerType:  TriggerCompletedGoalCount,
		TriggerValue: 5,
		IsActive:     true,
	},
	{
		ID:           "perfectionist",
		Title:        "Perfectionist",
		Description:  "Complete 10 goals",
		Icon:         "💎",
		Category:     "goals",
		TriggerType:  TriggerCompletedGoalCount,
		TriggerValue: 10,
		IsActive:     true,
	},
	{
		ID:           "first_task",
		Title:        "First Task Done",
		Description:  "Completed your first task",
		Icon:         "✅",
		Category:     "tasks",
		TriggerType:  TriggerCompletedTaskCount,
		TriggerValue: 1,
		IsActive:     true,
	},
	{
		ID:           "task_ninja",
		Title:        "Task Ninja",
		Description:  "Complete 10 tasks",
		Icon:         "🥷",
		Category:     "tasks",
		TriggerType:  TriggerCompletedTaskCount,
		TriggerValue: 10,
		IsActive:     true,
	},
	{
		ID:           "productive_month",
		Title:        "Productive Month",
		Description:  "Complete 50 tasks in a month",
		Icon:         "💫",
		Category:     "tasks",
		TriggerType:  TriggerMonthlyTaskCount,
		TriggerValue: 50,
		IsActive:     true,
	},
	{
		ID:           "work_horse",
		Title:        "Work Horse",
		Description:  "Complete 100 tasks",
		Icon:         "🐎",
		Category:     "tasks",
		TriggerType:  TriggerCompletedTaskCount,
		TriggerValue: 100,
		IsActive:     true,
	},
	{
		ID:           "getting_started",
		Title:        "Getting Started",
		Description:  "Maintain a 3-day streak",
		Icon:         "🌱",
		Category:     "streaks",
		TriggerType:  TriggerStreakCount,
		TriggerValue: 3,
		IsActive:     true,
	},
	{
		ID:           "week_warrior",
		Title:        "Week Warrior",
		Description:  "Complete tasks every day for a full week",
		Icon:         "⚡",
		Category:     "streaks",
		TriggerType:  TriggerStreakCount,
		TriggerValue: 7,
		IsActive:     true,
	},
	{
		ID:           "consistency_king",
		Title:        "Consistency King",
		Description:  "Maintain a 14-day streak",
		Icon:         "🔥",
		Category:     "streaks",
		TriggerType:  TriggerStreakCount,
		TriggerValue: 14,
		IsActive:     true,
	},
	{
		ID:           "streak_master",
		Title:        "Streak Master",
		Description:  "Maintain a 30-day streak",
		Icon:         "🌟",
		Category:     "streaks",
		TriggerType:  TriggerStreakCount,
		TriggerValue: 30,
		IsActive:     true,
	},
	{
		ID:           "legend",
		Title:        "Legend",
		Description:  "Maintain a 50-day streak",
		Icon:         "👑",
		Category:     "streaks",
		TriggerType:  TriggerStreakCount,
		TriggerValue: 50,
		IsActive:     true,
	},
	{
		ID:           "early_bird",
		Title:        "Early Bird",
		Description:  "Complete 5 tasks before 9 AM",
		Icon:         "🐦",
		Category:     "time",
		TriggerType:  TriggerEarlyMorningTasks,
		TriggerValue: 5,
		IsActive:     true,
	},
	{
		ID:           "night_owl",
		Title:        "Night Owl",
		Description:  "Complete 5 tasks after 10 PM",
		Icon:         "🦉",
		Category:     "time",
		TriggerType:  TriggerLateNightTasks,
		TriggerValue: 5,
		IsActive:     true,
	},
	{
		ID:           "speed_demon",
		Title:        "Speed Demon",
		Description:  "Complete a goal in under 24 hours",
		Icon:         "💨",
		Category:     "special",
		TriggerType:  TriggerFastGoalCompletion,
		TriggerValue: 1,
		IsActive:     true,
	},
	{
		ID:           "marathon_runner",
		Title:        "Marathon Runner",
		Description:  "Work on goals for 100 days",
		Icon:         "🏃",
		Category:     "special",
		TriggerType:  TriggerActiveDays,
		TriggerValue: 100,
		IsActive:     true,
	},
}

// ValidateCatalog checks every definition; a single malformed entry
// makes the whole catalog unusable for seeding.
func ValidateCatalog(defs []Definition) error {
	for i := range defs {
		if err := defs[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
