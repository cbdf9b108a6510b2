package achievement

import (
	"fmt"
	"time"
)

type TriggerType string

const (
	TriggerGoalCount          TriggerType = "goal_count"
	TriggerCompletedGoalCount TriggerType = "completed_goal_count"
	TriggerCompletedTaskCount TriggerType = "completed_task_count"
	TriggerStreakCount        TriggerType = "streak_count"
	TriggerMonthlyTaskCount   TriggerType = "monthly_task_count"
	TriggerEarlyMorningTasks  TriggerType = "early_morning_tasks"
	TriggerLateNightTasks     TriggerType = "late_night_tasks"
	TriggerFastGoalCompletion TriggerType = "fast_goal_completion"
	TriggerActiveDays         TriggerType = "active_days"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateUnlocked   State = "unlocked"
)

type Definition struct {
	ID           string      `json:"id" db:"id"`
	Title        string      `json:"title" db:"title"`
	Description  string      `json:"description" db:"description"`
	Icon         string      `json:"icon" db:"icon"`
	Category     string      `json:"category" db:"category"`
	TriggerType  TriggerType `json:"triggerType" db:"trigger_type"`
	TriggerValue int         `json:"triggerValue" db:"trigger_value"`
	IsActive     bool        `json:"isActive" db:"is_active"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

// UserAchievement tracks one user's standing against one definition.
// UnlockedAt is a one-way latch: once set it never clears or moves, even
// when the progress gauge later drops back below the target.
type UserAchievement struct {
	UserID        string     `json:"userId" db:"user_id"`
	AchievementID string     `json:"achievementId" db:"achievement_id"`
	Progress      int        `json:"progress" db:"progress"`
	Target        int        `json:"target" db:"target"`
	UnlockedAt    *time.Time `json:"unlockedAt,omitempty" db:"unlocked_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

func (ua *UserAchievement) State() State {
	switch {
	case ua.UnlockedAt != nil:
		return StateUnlocked
	case ua.Progress > 0:
		return StateInProgress
	default:
		return StateNotStarted
	}
}

type WithStatus struct {
	Definition
	Progress   int        `json:"progress"`
	Target     int        `json:"target"`
	State      State      `json:"state"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

type CategorySummary struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Unlocked int    `json:"unlocked"`
}

// Metrics is a consistent per-user snapshot of every value the trigger
// types can watch.
type Metrics struct {
	TotalGoals        int
	CompletedGoals    int
	CompletedTasks    int
	CurrentStreak     int
	LongestStreak     int
	MonthlyTasks      int
	EarlyMorningTasks int
	LateNightTasks    int
	FastGoals         int
	ActiveDays        int
}

// GaugeValue is the value stored as the achievement's progress. For
// streaks this is the live (current) streak, which can shrink; the
// unlock decision is made on UnlockValue instead.
func (d *Definition) GaugeValue(m Metrics) int {
	if d.TriggerType == TriggerStreakCount {
		return m.CurrentStreak
	}
	return d.UnlockValue(m)
}

// UnlockValue is the value compared against TriggerValue. Streak
// achievements unlock on the historical longest streak so that a run
// that qualified in the past keeps counting after it breaks.
func (d *Definition) UnlockValue(m Metrics) int {
	switch d.TriggerType {
	case TriggerGoalCount:
		return m.TotalGoals
	case TriggerCompletedGoalCount:
		return m.CompletedGoals
	case TriggerCompletedTaskCount:
		return m.CompletedTasks
	case TriggerStreakCount:
		return m.LongestStreak
	case TriggerMonthlyTaskCount:
		return m.MonthlyTasks
	case TriggerEarlyMorningTasks:
		return m.EarlyMorningTasks
	case TriggerLateNightTasks:
		return m.LateNightTasks
	case TriggerFastGoalCompletion:
		return m.FastGoals
	case TriggerActiveDays:
		return m.ActiveDays
	default:
		return 0
	}
}

var knownTriggers = map[TriggerType]bool{
	TriggerGoalCount:          true,
	TriggerCompletedGoalCount: true,
	TriggerCompletedTaskCount: true,
	TriggerStreakCount:        true,
	TriggerMonthlyTaskCount:   true,
	TriggerEarlyMorningTasks:  true,
	TriggerLateNightTasks:     true,
	TriggerFastGoalCompletion: true,
	TriggerActiveDays:         true,
}

// Validate rejects malformed definitions before they reach the catalog.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("achievement definition has empty id")
	}
	if d.Title == "" {
		return fmt.Errorf("achievement %q has empty title", d.ID)
	}
	if !knownTriggers[d.TriggerType] {
		return fmt.Errorf("achievement %q has unknown trigger type %q", d.ID, d.TriggerType)
	}
	if d.TriggerValue <= 0 {
		return fmt.Errorf("achievement %q has non-positive threshold %d", d.ID, d.TriggerValue)
	}
	return nil
}
