package activity

import "time"

const (
	TypeGoalCreated         = "goal_created"
	TypeGoalDraftCreated    = "goal_draft_created"
	TypeGoalDeleted         = "goal_deleted"
	TypeTaskCompleted       = "task_completed"
	TypeAchievementUnlocked = "achievement_unlocked"
)

// Activity is one entry in the user's activity feed. task_completed
// entries double as the event log behind the time-of-day achievements,
// so CreatedAt carries the real completion instant.
type Activity struct {
	ID          string         `json:"id" db:"id"`
	UserID      string         `json:"userId" db:"user_id"`
	Type        string         `json:"type" db:"type"`
	Description string         `json:"description" db:"description"`
	Metadata    map[string]any `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}
