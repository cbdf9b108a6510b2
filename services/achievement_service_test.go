package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalForgeAPI/internal/achievement"
)

func TestSeedCatalogIdempotent(t *testing.T) {
	pool := setupTestDB(t)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	svc := NewAchievementService(pool, analytics, activities)

	ctx := context.Background()
	require.NoError(t, svc.SeedCatalog(ctx))
	require.NoError(t, svc.SeedCatalog(ctx))

	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM achievement_definitions").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(achievement.Catalog), count)
}

func TestFirstTaskUnlocksExactlyOnce(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	ctx := context.Background()
	require.NoError(t, achievements.SeedCatalog(ctx))

	_, taskIDs := seedGoalWithTasks(t, goals, userID, 1)
	completeTask(t, goals, userID, taskIDs[0])

	// the completion trigger already ran an evaluation, so an explicit
	// re-check must not report the same unlock again
	result, err := achievements.CheckAchievements(ctx, userID)
	require.NoError(t, err)
	for _, a := range result.NewlyUnlocked {
		assert.NotEqual(t, "first_task", a.ID, "first_task must not unlock twice")
	}

	resp, err := achievements.GetAchievements(ctx, userID)
	require.NoError(t, err)

	var firstTask *achievement.WithStatus
	for _, a := range resp.Achievements {
		if a.ID == "first_task" {
			firstTask = a
		}
	}
	require.NotNil(t, firstTask, "first_task must be in the listing")
	assert.Equal(t, achievement.StateUnlocked, firstTask.State)
	require.NotNil(t, firstTask.UnlockedAt)
	firstUnlockTime := *firstTask.UnlockedAt

	// repeated checks stay quiet and never move the unlock timestamp
	for i := 0; i < 3; i++ {
		again, err := achievements.CheckAchievements(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, again.TotalNew)
	}

	resp, err = achievements.GetAchievements(ctx, userID)
	require.NoError(t, err)
	for _, a := range resp.Achievements {
		if a.ID == "first_task" {
			require.NotNil(t, a.UnlockedAt)
			assert.True(t, a.UnlockedAt.Equal(firstUnlockTime), "unlock timestamp must not change")
		}
	}
}

func TestUnlockRecordsActivity(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	ctx := context.Background()
	require.NoError(t, achievements.SeedCatalog(ctx))

	_, taskIDs := seedGoalWithTasks(t, goals, userID, 1)
	completeTask(t, goals, userID, taskIDs[0])

	recent, err := activities.GetRecent(ctx, userID, 50)
	require.NoError(t, err)

	unlockEvents := 0
	for _, a := range recent {
		if a.Type == "achievement_unlocked" && a.Metadata["achievementId"] == "first_task" {
			unlockEvents++
		}
	}
	assert.Equal(t, 1, unlockEvents, "exactly one unlock activity per achievement")
}

func TestProgressGaugeBelowThreshold(t *testing.T) {
	pool := setupTestDB(t)
	userID := newTestUser(t, pool)

	activities := NewActivityService(pool)
	analytics := NewAnalyticsService(pool)
	achievements := NewAchievementService(pool, analytics, activities)
	goals := NewGoalService(pool, achievements, activities)

	ctx := context.Background()
	require.NoError(t, achievements.SeedCatalog(ctx))

	_, taskIDs := seedGoalWithTasks(t, goals, userID, 3)
	for _, id := range taskIDs {
		completeTask(t, goals, userID, id)
	}

	resp, err := achievements.GetAchievements(ctx, userID)
	require.NoError(t, err)

	for _, a := range resp.Achievements {
		if a.ID == "work_horse" {
			// work_horse needs 100 completions; 3 leaves it in progress
			assert.Equal(t, achievement.StateInProgress, a.State)
			assert.Equal(t, 3, a.Progress)
			assert.Equal(t, 100, a.Target)
			assert.Nil(t, a.UnlockedAt)
		}
	}
}
