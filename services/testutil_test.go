package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"goalForgeAPI/internal/goal"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and
// applies the schema. Tests that need a database skip when it is unset
// so the pure-logic suites still run everywhere.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	_ = godotenv.Load("../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	schema, err := os.ReadFile("../schema.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// newTestUser returns a unique user id and registers cleanup of every
// row that id can own.
func newTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	userID := "test-user-" + uuid.New().String()

	t.Cleanup(func() {
		ctx := context.Background()
		for _, table := range []string{"activities", "user_achievements", "goals"} {
			query := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table)
			if _, err := pool.Exec(ctx, query, userID); err != nil {
				t.Logf("Warning: failed to cleanup %s: %v", table, err)
			}
		}
	})

	return userID
}

// seedGoalWithTasks creates a goal, one weekly goal and n tasks, and
// returns the goal plus the created task ids in creation order.
func seedGoalWithTasks(t *testing.T, svc *GoalService, userID string, n int) (*goal.Goal, []string) {
	t.Helper()
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, userID, &goal.CreateGoalRequest{
		Title:    "Run a marathon",
		Category: "fitness",
		Deadline: time.Now().UTC().AddDate(0, 3, 0).Format("2006-01-02"),
	})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	wg, err := svc.CreateWeeklyGoal(ctx, userID, &goal.CreateWeeklyGoalRequest{
		GoalID:     g.ID,
		Title:      "Base mileage",
		WeekNumber: 1,
	})
	if err != nil {
		t.Fatalf("Failed to create weekly goal: %v", err)
	}

	taskIDs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		task, err := svc.CreateTask(ctx, userID, &goal.CreateTaskRequest{
			WeeklyGoalID: wg.ID,
			GoalID:       g.ID,
			Title:        fmt.Sprintf("Training run %d", i+1),
			Day:          i + 1,
			Date:         time.Now().UTC().AddDate(0, 0, -i).Format("2006-01-02"),
		})
		if err != nil {
			t.Fatalf("Failed to create task %d: %v", i+1, err)
		}
		taskIDs = append(taskIDs, task.ID)
	}

	return g, taskIDs
}

func completeTask(t *testing.T, svc *GoalService, userID, taskID string) *goal.DailyTask {
	t.Helper()

	completed := true
	task, err := svc.UpdateTask(context.Background(), userID, taskID, &goal.UpdateTaskRequest{
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("Failed to complete task %s: %v", taskID, err)
	}
	return task
}
