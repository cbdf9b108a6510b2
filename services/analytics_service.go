package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"goalForgeAPI/internal/progress"
	"goalForgeAPI/internal/stats"
	"goalForgeAPI/internal/streak"
)

type AnalyticsService struct {
	db *pgxpool.Pool

	// now is swappable in tests; everything date-related runs in UTC
	now func() time.Time
}

func NewAnalyticsService(db *pgxpool.Pool) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// Snapshot reads every goal/task counter for a user in one statement so
// the totals are internally consistent even under concurrent writes.
func (s *AnalyticsService) Snapshot(ctx context.Context, userID string) (*stats.Snapshot, error) {
	query := `
	SELECT
		COUNT(g.id) AS total_goals,
		COUNT(g.id) FILTER (WHERE g.status = 'active') AS active_goals,
		COUNT(g.id) FILTER (WHERE g.status = 'completed') AS completed_goals,
		COUNT(g.id) FILTER (WHERE g.status = 'paused') AS paused_goals,
		COALESCE(SUM(t.total), 0) AS total_tasks,
		COALESCE(SUM(t.done), 0) AS completed_tasks,
		COALESCE(FLOOR(AVG(
			CASE WHEN g.status = 'completed'
				THEN GREATEST(1, g.updated_at::date - g.created_at::date)
			END
		)), 0)::int AS avg_completion_days
	FROM goals g
	LEFT JOIN LATERAL (
		SELECT COUNT(*) AS total,
			   COUNT(*) FILTER (WHERE completed) AS done
		FROM daily_tasks
		WHERE goal_id = g.id
	) t ON true
	WHERE g.user_id = $1
	`

	snap := &stats.Snapshot{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&snap.TotalGoals,
		&snap.ActiveGoals,
		&snap.CompletedGoals,
		&snap.PausedGoals,
		&snap.TotalTasks,
		&snap.CompletedTasks,
		&snap.AvgCompletionTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}

	if snap.CompletedTasks > snap.TotalTasks {
		// single-statement reads should make this impossible; if it shows
		// up the data itself is suspect
		log.Printf("Snapshot: data integrity warning for user %s: completedTasks %d > totalTasks %d",
			userID, snap.CompletedTasks, snap.TotalTasks)
		snap.CompletedTasks = snap.TotalTasks
	}

	snap.SuccessRate = progress.Compute(snap.TotalTasks, snap.CompletedTasks)

	return snap, nil
}

// Streaks groups the user's completed tasks into distinct calendar days
// and runs the streak calculation in-process.
func (s *AnalyticsService) Streaks(ctx context.Context, userID string) (streak.Result, error) {
	query := `
	SELECT DISTINCT t.date
	FROM daily_tasks t
	JOIN goals g ON g.id = t.goal_id
	WHERE g.user_id = $1 AND t.completed = true AND t.date <> ''
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return streak.Result{}, fmt.Errorf("failed to fetch completion dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return streak.Result{}, fmt.Errorf("failed to scan completion date: %w", err)
		}
		if d, ok := streak.ParseDay(raw); ok {
			dates = append(dates, d)
		}
	}
	if err = rows.Err(); err != nil {
		return streak.Result{}, fmt.Errorf("error iterating completion dates: %w", err)
	}

	return streak.Calculate(dates, s.now().UTC()), nil
}

func (s *AnalyticsService) GetProgressStats(ctx context.Context, userID string) (*stats.ProgressStats, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	streaks, err := s.Streaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekProgress, err := s.thisWeekProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &stats.ProgressStats{
		TotalGoals:        snap.TotalGoals,
		CompletedGoals:    snap.CompletedGoals,
		ActiveGoals:       snap.ActiveGoals,
		TotalTasks:        snap.TotalTasks,
		CompletedTasks:    snap.CompletedTasks,
		CurrentStreak:     streaks.CurrentStreak,
		LongestStreak:     streaks.LongestStreak,
		ThisWeekProgress:  weekProgress,
		AvgCompletionTime: snap.AvgCompletionTime,
	}, nil
}

func (s *AnalyticsService) GetDashboardStats(ctx context.Context, userID string) (*stats.DashboardStats, error) {
	snap, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &stats.DashboardStats{
		ActiveGoalsCount:    snap.ActiveGoals,
		CompletedTasksCount: snap.CompletedTasks,
		SuccessRate:         snap.SuccessRate,
	}, nil
}

// thisWeekProgress is the completion percentage over tasks dated inside
// the current calendar week, Monday through Sunday, in UTC.
func (s *AnalyticsService) thisWeekProgress(ctx context.Context, userID string) (int, error) {
	monday, sunday := weekBounds(s.now().UTC())

	query := `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE t.completed)
	FROM daily_tasks t
	JOIN goals g ON g.id = t.goal_id
	WHERE g.user_id = $1 AND t.date >= $2 AND t.date <= $3
	`

	var total, done int
	err := s.db.QueryRow(ctx, query, userID, monday.Format("2006-01-02"), sunday.Format("2006-01-02")).Scan(&total, &done)
	if err != nil {
		return 0, fmt.Errorf("failed to read week progress: %w", err)
	}

	return progress.Compute(total, done), nil
}

func (s *AnalyticsService) GetCategoryPerformance(ctx context.Context, userID string) ([]*stats.CategoryPerformance, error) {
	query := `
	SELECT
		g.category,
		COUNT(g.id),
		COUNT(g.id) FILTER (WHERE g.status = 'completed'),
		COALESCE(SUM(t.total), 0),
		COALESCE(SUM(t.done), 0),
		COALESCE(AVG(
			CASE WHEN g.status = 'completed'
				THEN GREATEST(1, g.updated_at::date - g.created_at::date)
			END
		), 0)
	FROM goals g
	LEFT JOIN LATERAL (
		SELECT COUNT(*) AS total,
			   COUNT(*) FILTER (WHERE completed) AS done
		FROM daily_tasks
		WHERE goal_id = g.id
	) t ON true
	WHERE g.user_id = $1
	GROUP BY g.category
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category performance: %w", err)
	}
	defer rows.Close()

	var categories []*stats.CategoryPerformance
	for rows.Next() {
		var totalTasks, doneTasks int
		c := &stats.CategoryPerformance{}
		err := rows.Scan(&c.Name, &c.Count, &c.CompletedGoals, &totalTasks, &doneTasks, &c.AvgTimeToComplete)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		c.SuccessRate = progress.Compute(totalTasks, doneTasks)
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].SuccessRate > categories[j].SuccessRate
	})

	if categories == nil {
		categories = []*stats.CategoryPerformance{}
	}

	return categories, nil
}

// GetProductivityPatterns groups the user's tasks by the day of week of
// their scheduled date. Tasks without a parseable date fall back to the
// day they were created, matching how the data was written historically.
func (s *AnalyticsService) GetProductivityPatterns(ctx context.Context, userID string) ([]*stats.ProductivityPattern, error) {
	query := `
	SELECT t.date, t.completed, t.created_at
	FROM daily_tasks t
	JOIN goals g ON g.id = t.goal_id
	WHERE g.user_id = $1
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks for patterns: %w", err)
	}
	defer rows.Close()

	type bucket struct {
		total int
		done  int
	}
	buckets := make(map[time.Weekday]*bucket)

	for rows.Next() {
		var rawDate string
		var completed bool
		var createdAt time.Time
		if err := rows.Scan(&rawDate, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}

		day, ok := streak.ParseDay(rawDate)
		if !ok {
			day = createdAt.UTC()
		}

		b := buckets[day.Weekday()]
		if b == nil {
			b = &bucket{}
			buckets[day.Weekday()] = b
		}
		b.total++
		if completed {
			b.done++
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	patterns := []*stats.ProductivityPattern{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		b, ok := buckets[wd]
		if !ok {
			continue
		}
		patterns = append(patterns, &stats.ProductivityPattern{
			DayOfWeek:      wd.String(),
			TasksCompleted: b.done,
			CompletionRate: progress.Compute(b.total, b.done),
		})
	}

	return patterns, nil
}

// MonthlyCompletedTasks counts completed tasks dated in the calendar
// month containing now.
func (s *AnalyticsService) MonthlyCompletedTasks(ctx context.Context, userID string) (int, error) {
	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	query := `
	SELECT COUNT(*)
	FROM daily_tasks t
	JOIN goals g ON g.id = t.goal_id
	WHERE g.user_id = $1 AND t.completed = true
		AND t.date >= $2 AND t.date <= $3
	`

	var count int
	err := s.db.QueryRow(ctx, query, userID, first.Format("2006-01-02"), last.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count monthly tasks: %w", err)
	}
	return count, nil
}

// ActiveDays counts the distinct calendar days with at least one
// completed task.
func (s *AnalyticsService) ActiveDays(ctx context.Context, userID string) (int, error) {
	query := `
	SELECT COUNT(DISTINCT t.date)
	FROM daily_tasks t
	JOIN goals g ON g.id = t.goal_id
	WHERE g.user_id = $1 AND t.completed = true AND t.date <> ''
	`

	var count int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active days: %w", err)
	}
	return count, nil
}

// FastCompletedGoals counts goals finished within a day of creation.
func (s *AnalyticsService) FastCompletedGoals(ctx context.Context, userID string) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM goals
	WHERE user_id = $1 AND status = 'completed'
		AND updated_at - created_at < INTERVAL '24 hours'
	`

	var count int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count fast goal completions: %w", err)
	}
	return count, nil
}

// weekBounds returns the Monday and Sunday of the calendar week
// containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
