package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"goalForgeAPI/internal/activity"
	"goalForgeAPI/internal/goal"
	"goalForgeAPI/internal/progress"
)

var (
	ErrGoalNotFound       = errors.New("goal not found")
	ErrWeeklyGoalNotFound = errors.New("weekly goal not found")
	ErrTaskNotFound       = errors.New("task not found")
)

type GoalService struct {
	db           *pgxpool.Pool
	achievements *AchievementService
	activities   *ActivityService
}

func NewGoalService(db *pgxpool.Pool, achievements *AchievementService, activities *ActivityService) *GoalService {
	return &GoalService{db: db, achievements: achievements, activities: activities}
}

const goalColumns = `id, user_id, title, description, category, specific, measurable,
	achievable, relevant, timebound, exciting, deadline, progress, status, created_at, updated_at`

func scanGoal(row pgx.Row) (*goal.Goal, error) {
	g := &goal.Goal{}
	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
		&g.Specific, &g.Measurable, &g.Achievable, &g.Relevant,
		&g.Timebound, &g.Exciting, &g.Deadline,
		&g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) CreateGoal(ctx context.Context, userID string, req *goal.CreateGoalRequest) (*goal.Goal, error) {
	status := goal.StatusActive
	if req.Draft {
		status = goal.StatusPaused
	}

	query := `
	INSERT INTO goals (id, user_id, title, description, category, specific, measurable,
		achievable, relevant, timebound, exciting, deadline, progress, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, NOW(), NOW())
	RETURNING ` + goalColumns

	g, err := scanGoal(s.db.QueryRow(ctx, query,
		uuid.New().String(), userID, req.Title, req.Description, req.Category,
		req.Specific, req.Measurable, req.Achievable, req.Relevant,
		req.Timebound, req.Exciting, req.Deadline, status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	actType := activity.TypeGoalCreated
	description := fmt.Sprintf("Created new goal: %s", g.Title)
	if req.Draft {
		actType = activity.TypeGoalDraftCreated
		description = fmt.Sprintf("Saved draft goal: %s", g.Title)
	}
	if err := s.activities.Record(ctx, userID, actType, description,
		map[string]any{"goalId": g.ID, "goalTitle": g.Title, "status": g.Status}); err != nil {
		log.Printf("CreateGoal: failed to record activity: %v", err)
	}

	return g, nil
}

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	if goals == nil {
		goals = []*goal.Goal{}
	}
	return goals, nil
}

func (s *GoalService) GetGoal(ctx context.Context, userID, goalID string) (*goal.GoalWithBreakdown, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	g, err := scanGoal(s.db.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	weekly, err := s.weeklyGoalsWithTasks(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	return &goal.GoalWithBreakdown{Goal: *g, WeeklyGoals: weekly}, nil
}

func (s *GoalService) ListGoalsDetailed(ctx context.Context, userID string) ([]*goal.GoalWithBreakdown, error) {
	goals, err := s.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	detailed := []*goal.GoalWithBreakdown{}
	for _, g := range goals {
		weekly, err := s.weeklyGoalsWithTasks(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		detailed = append(detailed, &goal.GoalWithBreakdown{Goal: *g, WeeklyGoals: weekly})
	}
	return detailed, nil
}

func (s *GoalService) weeklyGoalsWithTasks(ctx context.Context, goalID string) ([]*goal.WeeklyGoalWithTasks, error) {
	query := `
	SELECT id, goal_id, title, description, week_number, start_date, end_date,
		progress, status, created_at, updated_at
	FROM weekly_goals
	WHERE goal_id = $1
	ORDER BY week_number
	`

	rows, err := s.db.Query(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly goals: %w", err)
	}
	defer rows.Close()

	weekly := []*goal.WeeklyGoalWithTasks{}
	for rows.Next() {
		wg := &goal.WeeklyGoalWithTasks{}
		err := rows.Scan(&wg.ID, &wg.GoalID, &wg.Title, &wg.Description, &wg.WeekNumber,
			&wg.StartDate, &wg.EndDate, &wg.Progress, &wg.Status, &wg.CreatedAt, &wg.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly goal: %w", err)
		}
		weekly = append(weekly, wg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly goals: %w", err)
	}

	for _, wg := range weekly {
		tasks, err := s.tasksForWeeklyGoal(ctx, wg.ID)
		if err != nil {
			return nil, err
		}
		wg.Tasks = tasks
	}
	return weekly, nil
}

const taskColumns = `id, weekly_goal_id, goal_id, title, description, day, date,
	completed, priority, estimated_hours, created_at, updated_at`

func scanTask(row pgx.Row) (*goal.DailyTask, error) {
	t := &goal.DailyTask{}
	err := row.Scan(
		&t.ID, &t.WeeklyGoalID, &t.GoalID, &t.Title, &t.Description,
		&t.Day, &t.Date, &t.Completed, &t.Priority, &t.EstimatedHours,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *GoalService) tasksForWeeklyGoal(ctx context.Context, weeklyGoalID string) ([]*goal.DailyTask, error) {
	query := `SELECT ` + taskColumns + ` FROM daily_tasks WHERE weekly_goal_id = $1 ORDER BY day`

	rows, err := s.db.Query(ctx, query, weeklyGoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*goal.DailyTask{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID string, req *goal.UpdateGoalRequest) (*goal.Goal, error) {
	query := `
	UPDATE goals
	SET
		title = COALESCE($3, title),
		description = COALESCE($4, description),
		category = COALESCE($5, category),
		deadline = COALESCE($6, deadline),
		status = COALESCE($7, status),
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING ` + goalColumns

	g, err := scanGoal(s.db.QueryRow(ctx, query, goalID, userID,
		req.Title, req.Description, req.Category, req.Deadline, req.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	// moving a goal to completed can unlock goal-count achievements
	if req.Status != nil && *req.Status == goal.StatusCompleted {
		s.achievements.CheckAfterTaskCompletion(ctx, userID)
	}

	return g, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	var title string
	var status goal.Status
	err := s.db.QueryRow(ctx, `SELECT title, status FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID).
		Scan(&title, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("failed to load goal: %w", err)
	}

	// weekly goals and tasks cascade
	result, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	if err := s.activities.Record(ctx, userID, activity.TypeGoalDeleted,
		fmt.Sprintf("Deleted goal: %s", title),
		map[string]any{"goalId": goalID, "goalTitle": title, "status": status}); err != nil {
		log.Printf("DeleteGoal: failed to record activity: %v", err)
	}

	return nil
}

func (s *GoalService) CreateWeeklyGoal(ctx context.Context, userID string, req *goal.CreateWeeklyGoalRequest) (*goal.WeeklyGoal, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM goals WHERE id = $1 AND user_id = $2)`,
		req.GoalID, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check goal: %w", err)
	}
	if !exists {
		return nil, ErrGoalNotFound
	}

	query := `
	INSERT INTO weekly_goals (id, goal_id, title, description, week_number, start_date, end_date,
		progress, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 'pending', NOW(), NOW())
	RETURNING id, goal_id, title, description, week_number, start_date, end_date,
		progress, status, created_at, updated_at
	`

	wg := &goal.WeeklyGoal{}
	err = s.db.QueryRow(ctx, query,
		uuid.New().String(), req.GoalID, req.Title, req.Description,
		req.WeekNumber, req.StartDate, req.EndDate,
	).Scan(&wg.ID, &wg.GoalID, &wg.Title, &wg.Description, &wg.WeekNumber,
		&wg.StartDate, &wg.EndDate, &wg.Progress, &wg.Status, &wg.CreatedAt, &wg.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create weekly goal: %w", err)
	}
	return wg, nil
}

func (s *GoalService) CreateTask(ctx context.Context, userID string, req *goal.CreateTaskRequest) (*goal.DailyTask, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM weekly_goals wg
			JOIN goals g ON g.id = wg.goal_id
			WHERE wg.id = $1 AND g.id = $2 AND g.user_id = $3
		)`, req.WeeklyGoalID, req.GoalID, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check weekly goal: %w", err)
	}
	if !exists {
		return nil, ErrWeeklyGoalNotFound
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	estimated := req.EstimatedHours
	if estimated <= 0 {
		estimated = 1
	}

	query := `
	INSERT INTO daily_tasks (id, weekly_goal_id, goal_id, title, description, day, date,
		completed, priority, estimated_hours, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8, $9, NOW(), NOW())
	RETURNING ` + taskColumns

	t, err := scanTask(s.db.QueryRow(ctx, query,
		uuid.New().String(), req.WeeklyGoalID, req.GoalID, req.Title, req.Description,
		req.Day, req.Date, priority, estimated))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// a new task dilutes the percentages immediately
	if err := s.RecomputeProgress(ctx, t.GoalID, t.WeeklyGoalID); err != nil {
		log.Printf("CreateTask: progress recompute failed for goal %s: %v", t.GoalID, err)
	}

	return t, nil
}

// UpdateTask applies a partial update. A false-to-true completion
// transition recomputes the owning goal and weekly-goal progress and
// then triggers achievement evaluation; the evaluation is best-effort
// and never fails the update itself.
func (s *GoalService) UpdateTask(ctx context.Context, userID, taskID string, req *goal.UpdateTaskRequest) (*goal.DailyTask, error) {
	var wasCompleted bool
	err := s.db.QueryRow(ctx,
		`SELECT t.completed
		 FROM daily_tasks t
		 JOIN goals g ON g.id = t.goal_id
		 WHERE t.id = $1 AND g.user_id = $2`, taskID, userID).Scan(&wasCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	query := `
	UPDATE daily_tasks
	SET
		title = COALESCE($2, title),
		description = COALESCE($3, description),
		day = COALESCE($4, day),
		date = COALESCE($5, date),
		completed = COALESCE($6, completed),
		priority = COALESCE($7, priority),
		estimated_hours = COALESCE($8, estimated_hours),
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + taskColumns

	t, err := scanTask(s.db.QueryRow(ctx, query, taskID,
		req.Title, req.Description, req.Day, req.Date,
		req.Completed, req.Priority, req.EstimatedHours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.RecomputeProgress(ctx, t.GoalID, t.WeeklyGoalID); err != nil {
		return nil, err
	}

	if !wasCompleted && t.Completed {
		if err := s.activities.Record(ctx, userID, activity.TypeTaskCompleted,
			fmt.Sprintf("Completed task: %s", t.Title),
			map[string]any{"taskId": t.ID, "taskTitle": t.Title}); err != nil {
			log.Printf("UpdateTask: failed to record completion activity: %v", err)
		}

		s.achievements.CheckAfterTaskCompletion(ctx, userID)
	}

	return t, nil
}

// RecomputeProgress recalculates the derived progress of one goal and
// one weekly goal from their own tasks. It never scans unrelated goals.
func (s *GoalService) RecomputeProgress(ctx context.Context, goalID, weeklyGoalID string) error {
	if goalID != "" {
		if err := s.updateGoalProgress(ctx, goalID); err != nil {
			return err
		}
	}
	if weeklyGoalID != "" {
		if err := s.updateWeeklyGoalProgress(ctx, weeklyGoalID); err != nil {
			return err
		}
	}
	return nil
}

func (s *GoalService) updateGoalProgress(ctx context.Context, goalID string) error {
	var total, done int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM daily_tasks WHERE goal_id = $1`,
		goalID).Scan(&total, &done)
	if err != nil {
		return fmt.Errorf("failed to count goal tasks: %w", err)
	}

	result, err := s.db.Exec(ctx,
		`UPDATE goals SET progress = $2, updated_at = NOW() WHERE id = $1`,
		goalID, progress.Compute(total, done))
	if err != nil {
		return fmt.Errorf("failed to write goal progress: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *GoalService) updateWeeklyGoalProgress(ctx context.Context, weeklyGoalID string) error {
	var total, done int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM daily_tasks WHERE weekly_goal_id = $1`,
		weeklyGoalID).Scan(&total, &done)
	if err != nil {
		return fmt.Errorf("failed to count weekly goal tasks: %w", err)
	}

	result, err := s.db.Exec(ctx,
		`UPDATE weekly_goals SET progress = $2, updated_at = NOW() WHERE id = $1`,
		weeklyGoalID, progress.Compute(total, done))
	if err != nil {
		return fmt.Errorf("failed to write weekly goal progress: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrWeeklyGoalNotFound
	}
	return nil
}
