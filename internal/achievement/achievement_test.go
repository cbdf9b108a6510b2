package achievement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsValid(t *testing.T) {
	require.NoError(t, ValidateCatalog(Catalog))

	seen := make(map[string]bool)
	for _, d := range Catalog {
		assert.False(t, seen[d.ID], "duplicate catalog id %q", d.ID)
		seen[d.ID] = true
	}
}

func TestValidateRejectsMalformedDefinitions(t *testing.T) {
	cases := []Definition{
		{ID: "", Title: "x", TriggerType: TriggerGoalCount, TriggerValue: 1},
		{ID: "x", Title: "", TriggerType: TriggerGoalCount, TriggerValue: 1},
		{ID: "x", Title: "x", TriggerType: "mystery_trigger", TriggerValue: 1},
		{ID: "x", Title: "x", TriggerType: TriggerGoalCount, TriggerValue: 0},
		{ID: "x", Title: "x", TriggerType: TriggerGoalCount, TriggerValue: -3},
	}
	for _, d := range cases {
		assert.Error(t, d.Validate(), "%+v", d)
	}
}

func TestUnlockValueMapping(t *testing.T) {
	m := Metrics{
		TotalGoals:        3,
		CompletedGoals:    2,
		CompletedTasks:    40,
		CurrentStreak:     1,
		LongestStreak:     9,
		MonthlyTasks:      12,
		EarlyMorningTasks: 4,
		LateNightTasks:    6,
		FastGoals:         1,
		ActiveDays:        25,
	}

	cases := map[TriggerType]int{
		TriggerGoalCount:          3,
		TriggerCompletedGoalCount: 2,
		TriggerCompletedTaskCount: 40,
		TriggerStreakCount:        9,
		TriggerMonthlyTaskCount:   12,
		TriggerEarlyMorningTasks:  4,
		TriggerLateNightTasks:     6,
		TriggerFastGoalCompletion: 1,
		TriggerActiveDays:         25,
	}
	for trigger, want := range cases {
		d := Definition{TriggerType: trigger}
		assert.Equal(t, want, d.UnlockValue(m), string(trigger))
	}
}

func TestStreakGaugeTracksCurrentButUnlocksOnLongest(t *testing.T) {
	// streak broke: current is 0 but the 7-day run happened
	m := Metrics{CurrentStreak: 0, LongestStreak: 7}
	d := Definition{TriggerType: TriggerStreakCount, TriggerValue: 7}

	assert.Equal(t, 0, d.GaugeValue(m))
	assert.GreaterOrEqual(t, d.UnlockValue(m), d.TriggerValue)
}

func TestStateIsLatched(t *testing.T) {
	now := time.Now()

	ua := UserAchievement{Progress: 0, Target: 7}
	assert.Equal(t, StateNotStarted, ua.State())

	ua.Progress = 3
	assert.Equal(t, StateInProgress, ua.State())

	ua.UnlockedAt = &now
	assert.Equal(t, StateUnlocked, ua.State())

	// gauge drops below target after unlock: still unlocked
	ua.Progress = 0
	assert.Equal(t, StateUnlocked, ua.State())
}
