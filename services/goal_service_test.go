package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalForgeAPI/internal/goal"
)

func TestUpdateTaskRecomputesProgress(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	svc := NewGoalService(pool, achievements, activities)

	g, taskIDs := seedGoalWithTasks(t, svc, userID, 4)
	require.Equal(t, 0, g.Progress)

	for _, id := range taskIDs[:3] {
		completeTask(t, svc, userID, id)
	}

	detail, err := svc.GetGoal(context.Background(), userID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, detail.Progress)
	require.Len(t, detail.WeeklyGoals, 1)
	assert.Equal(t, 75, detail.WeeklyGoals[0].Progress)
	require.Len(t, detail.WeeklyGoals[0].Tasks, 4)
}

func TestUpdateTaskPartialUpdate(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	svc := NewGoalService(pool, achievements, activities)

	_, taskIDs := seedGoalWithTasks(t, svc, userID, 1)

	newTitle := "Tempo run"
	updated, err := svc.UpdateTask(context.Background(), userID, taskIDs[0], &goal.UpdateTaskRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)

	assert.Equal(t, "Tempo run", updated.Title)
	assert.False(t, updated.Completed, "untouched fields must keep their values")
	assert.Equal(t, 1, updated.Day)
}

func TestUpdateTaskOwnershipAndMissing(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)
	otherUser := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	svc := NewGoalService(pool, achievements, activities)

	_, taskIDs := seedGoalWithTasks(t, svc, userID, 1)

	completed := true
	_, err := svc.UpdateTask(context.Background(), otherUser, taskIDs[0], &goal.UpdateTaskRequest{
		Completed: &completed,
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.UpdateTask(context.Background(), userID, "no-such-task", &goal.UpdateTaskRequest{
		Completed: &completed,
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCreateGoalDraftStatus(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	svc := NewGoalService(pool, achievements, activities)

	draft, err := svc.CreateGoal(context.Background(), userID, &goal.CreateGoalRequest{
		Title: "Learn Spanish",
		Draft: true,
	})
	require.NoError(t, err)
	assert.Equal(t, goal.StatusPaused, draft.Status)

	active, err := svc.CreateGoal(context.Background(), userID, &goal.CreateGoalRequest{
		Title: "Learn French",
	})
	require.NoError(t, err)
	assert.Equal(t, goal.StatusActive, active.Status)
}

func TestDeleteGoalCascades(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	svc := NewGoalService(pool, achievements, activities)

	g, _ := seedGoalWithTasks(t, svc, userID, 2)

	ctx := context.Background()
	require.NoError(t, svc.DeleteGoal(ctx, userID, g.ID))

	var taskCount int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM daily_tasks WHERE goal_id = $1", g.ID).Scan(&taskCount)
	require.NoError(t, err)
	assert.Equal(t, 0, taskCount)

	err = svc.DeleteGoal(ctx, userID, g.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
