package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalForgeAPI/internal/goal"
)

func TestSnapshotEmptyUser(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	svc := NewAnalyticsService(pool)

	snap, err := svc.Snapshot(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 0, snap.TotalGoals)
	assert.Equal(t, 0, snap.ActiveGoals)
	assert.Equal(t, 0, snap.CompletedGoals)
	assert.Equal(t, 0, snap.TotalTasks)
	assert.Equal(t, 0, snap.CompletedTasks)
	assert.Equal(t, 0, snap.SuccessRate)
	assert.Equal(t, 0, snap.AvgCompletionTime)
}

func TestProgressStatsEmptyUser(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	svc := NewAnalyticsService(pool)

	progressStats, err := svc.GetProgressStats(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 0, progressStats.TotalGoals)
	assert.Equal(t, 0, progressStats.CurrentStreak)
	assert.Equal(t, 0, progressStats.LongestStreak)
	assert.Equal(t, 0, progressStats.ThisWeekProgress)
}

func TestSnapshotCountsTasks(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	_, taskIDs := seedGoalWithTasks(t, goals, userID, 4)
	for _, id := range taskIDs[:3] {
		completeTask(t, goals, userID, id)
	}

	snap, err := analytics.Snapshot(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.TotalGoals)
	assert.Equal(t, 1, snap.ActiveGoals)
	assert.Equal(t, 4, snap.TotalTasks)
	assert.Equal(t, 3, snap.CompletedTasks)
	assert.Equal(t, 75, snap.SuccessRate)
}

func TestStreaksFromTaskDates(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	// tasks seeded with dates today, yesterday, the day before
	_, taskIDs := seedGoalWithTasks(t, goals, userID, 3)
	for _, id := range taskIDs {
		completeTask(t, goals, userID, id)
	}

	result, err := analytics.Streaks(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.CurrentStreak)
	assert.Equal(t, 3, result.LongestStreak)
}

func TestCategoryPerformanceGrouping(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	ctx := context.Background()

	for _, c := range []string{"fitness", "fitness", "career"} {
		_, err := goals.CreateGoal(ctx, userID, &goal.CreateGoalRequest{
			Title:    "Goal in " + c,
			Category: c,
		})
		require.NoError(t, err)
	}

	categories, err := analytics.GetCategoryPerformance(ctx, userID)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	byName := map[string]int{}
	for _, c := range categories {
		byName[c.Name] = c.Count
	}
	assert.Equal(t, 2, byName["fitness"])
	assert.Equal(t, 1, byName["career"])
}

func TestDashboardStats(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	_, taskIDs := seedGoalWithTasks(t, goals, userID, 2)
	completeTask(t, goals, userID, taskIDs[0])

	dashboard, err := analytics.GetDashboardStats(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.ActiveGoalsCount)
	assert.Equal(t, 1, dashboard.CompletedTasksCount)
	assert.Equal(t, 50, dashboard.SuccessRate)
}
