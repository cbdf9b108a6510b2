package goal

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

type Goal struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Specific    string    `json:"specific" db:"specific"`
	Measurable  string    `json:"measurable" db:"measurable"`
	Achievable  string    `json:"achievable" db:"achievable"`
	Relevant    string    `json:"relevant" db:"relevant"`
	Timebound   string    `json:"timebound" db:"timebound"`
	Exciting    string    `json:"exciting" db:"exciting"`
	Deadline    string    `json:"deadline" db:"deadline"`
	Progress    int       `json:"progress" db:"progress"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type WeeklyGoal struct {
	ID          string    `json:"id" db:"id"`
	GoalID      string    `json:"goalId" db:"goal_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	WeekNumber  int       `json:"weekNumber" db:"week_number"`
	StartDate   string    `json:"startDate" db:"start_date"`
	EndDate     string    `json:"endDate" db:"end_date"`
	Progress    int       `json:"progress" db:"progress"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// DailyTask is the leaf unit of work. Its completed flag is the sole
// source of the completion signal that drives progress and achievements.
type DailyTask struct {
	ID             string    `json:"id" db:"id"`
	WeeklyGoalID   string    `json:"weeklyGoalId" db:"weekly_goal_id"`
	GoalID         string    `json:"goalId" db:"goal_id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Day            int       `json:"day" db:"day"`
	Date           string    `json:"date,omitempty" db:"date"`
	Completed      bool      `json:"completed" db:"completed"`
	Priority       string    `json:"priority" db:"priority"`
	EstimatedHours int       `json:"estimatedHours" db:"estimated_hours"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type WeeklyGoalWithTasks struct {
	WeeklyGoal
	Tasks []*DailyTask `json:"tasks"`
}

type GoalWithBreakdown struct {
	Goal
	WeeklyGoals []*WeeklyGoalWithTasks `json:"weeklyGoals"`
}

type CreateGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Specific    string `json:"specific"`
	Measurable  string `json:"measurable"`
	Achievable  string `json:"achievable"`
	Relevant    string `json:"relevant"`
	Timebound   string `json:"timebound"`
	Exciting    string `json:"exciting"`
	Deadline    string `json:"deadline"`
	Draft       bool   `json:"draft"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Deadline    *string `json:"deadline"`
	Status      *Status `json:"status"`
}

type CreateWeeklyGoalRequest struct {
	GoalID      string `json:"goalId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WeekNumber  int    `json:"weekNumber"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

type CreateTaskRequest struct {
	WeeklyGoalID   string `json:"weeklyGoalId"`
	GoalID         string `json:"goalId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Day            int    `json:"day"`
	Date           string `json:"date"`
	Priority       string `json:"priority"`
	EstimatedHours int    `json:"estimatedHours"`
}

// UpdateTaskRequest carries a partial task update. Nil fields are left
// untouched; parent ids and timestamps are never client-writable.
type UpdateTaskRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Day            *int    `json:"day"`
	Date           *string `json:"date"`
	Completed      *bool   `json:"completed"`
	Priority       *string `json:"priority"`
	EstimatedHours *int    `json:"estimatedHours"`
}
