package services

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"goalForgeAPI/internal/achievement"
	"goalForgeAPI/internal/activity"
	"goalForgeAPI/middleware"
)

const (
	earlyMorningCutoffHour = 9
	lateNightCutoffHour    = 22
)

type AchievementService struct {
	db         *pgxpool.Pool
	analytics  *AnalyticsService
	activities *ActivityService
}

func NewAchievementService(db *pgxpool.Pool, analytics *AnalyticsService, activities *ActivityService) *AchievementService {
	return &AchievementService{db: db, analytics: analytics, activities: activities}
}

// SeedCatalog makes sure every catalog definition exists. Seeding is
// keyed by definition id, so concurrent first-runs from several server
// instances converge without duplicates. A malformed catalog halts
// seeding before any row is written.
func (s *AchievementService) SeedCatalog(ctx context.Context) error {
	if err := achievement.ValidateCatalog(achievement.Catalog); err != nil {
		return fmt.Errorf("achievement catalog is invalid: %w", err)
	}

	query := `
		INSERT INTO achievement_definitions
			(id, title, description, icon, category, trigger_type, trigger_value, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	seeded := 0
	for _, def := range achievement.Catalog {
		tag, err := s.db.Exec(ctx, query,
			def.ID, def.Title, def.Description, def.Icon, def.Category,
			def.TriggerType, def.TriggerValue, def.IsActive)
		if err != nil {
			return fmt.Errorf("failed to seed achievement %q: %w", def.ID, err)
		}
		seeded += int(tag.RowsAffected())
	}

	if seeded > 0 {
		log.Printf("Seeded %d achievement definitions", seeded)
	}
	return nil
}

type CheckResult struct {
	NewlyUnlocked []*achievement.WithStatus `json:"newlyUnlocked"`
	TotalNew      int                       `json:"totalNew"`
}

// CheckAchievements evaluates the whole catalog against a fresh metrics
// snapshot and performs any pending unlock transitions. Re-running it
// with no intervening task changes is a no-op: the unlock write only
// fires while unlocked_at is still null.
func (s *AchievementService) CheckAchievements(ctx context.Context, userID string) (*CheckResult, error) {
	defs, err := s.activeDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := s.collectMetrics(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{NewlyUnlocked: []*achievement.WithStatus{}}

	upsert := `
		INSERT INTO user_achievements (user_id, achievement_id, progress, target, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, achievement_id)
		DO UPDATE SET progress = EXCLUDED.progress, updated_at = NOW()
	`
	// conditional set keeps unlocked_at a one-way latch under races:
	// two concurrent evaluations cannot both claim the unlock
	unlock := `
		UPDATE user_achievements
		SET unlocked_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND achievement_id = $2 AND unlocked_at IS NULL
	`

	for _, def := range defs {
		gauge := def.GaugeValue(metrics)

		if _, err := s.db.Exec(ctx, upsert, userID, def.ID, gauge, def.TriggerValue); err != nil {
			return nil, fmt.Errorf("failed to update achievement %q: %w", def.ID, err)
		}

		if def.UnlockValue(metrics) < def.TriggerValue {
			continue
		}

		tag, err := s.db.Exec(ctx, unlock, userID, def.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to unlock achievement %q: %w", def.ID, err)
		}
		if tag.RowsAffected() == 0 {
			continue // already unlocked earlier
		}

		unlocked := &achievement.WithStatus{
			Definition: *def,
			Progress:   gauge,
			Target:     def.TriggerValue,
			State:      achievement.StateUnlocked,
		}
		result.NewlyUnlocked = append(result.NewlyUnlocked, unlocked)
		middleware.ObserveAchievementUnlock(def.ID)

		if err := s.activities.Record(ctx, userID, activity.TypeAchievementUnlocked,
			fmt.Sprintf("Unlocked achievement: %s", def.Title),
			map[string]any{"achievementId": def.ID, "achievementTitle": def.Title},
		); err != nil {
			log.Printf("CheckAchievements: failed to record unlock activity for %s: %v", def.ID, err)
		}
	}

	result.TotalNew = len(result.NewlyUnlocked)
	return result, nil
}

// CheckAfterTaskCompletion is the synchronous trigger that runs after a
// task flips to completed. It is best-effort: evaluation problems are
// logged and must never fail the task update that caused them.
func (s *AchievementService) CheckAfterTaskCompletion(ctx context.Context, userID string) {
	if _, err := s.CheckAchievements(ctx, userID); err != nil {
		log.Printf("CheckAfterTaskCompletion: achievement evaluation failed for user %s: %v", userID, err)
	}
}

type AchievementsResponse struct {
	Achievements  []*achievement.WithStatus      `json:"achievements"`
	TotalUnlocked int                            `json:"totalUnlocked"`
	Categories    []*achievement.CategorySummary `json:"categories"`
}

// GetAchievements re-evaluates lazily (best effort), then returns the
// catalog joined with the user's per-achievement state.
func (s *AchievementService) GetAchievements(ctx context.Context, userID string) (*AchievementsResponse, error) {
	if _, err := s.CheckAchievements(ctx, userID); err != nil {
		log.Printf("GetAchievements: lazy evaluation failed for user %s: %v", userID, err)
	}

	query := `
	SELECT
		d.id, d.title, d.description, d.icon, d.category,
		d.trigger_type, d.trigger_value, d.is_active, d.created_at,
		COALESCE(ua.progress, 0),
		COALESCE(ua.target, d.trigger_value),
		ua.unlocked_at
	FROM achievement_definitions d
	LEFT JOIN user_achievements ua
		ON d.id = ua.achievement_id AND ua.user_id = $1
	WHERE d.is_active = true
	ORDER BY (ua.unlocked_at IS NULL), d.trigger_value ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	resp := &AchievementsResponse{Achievements: []*achievement.WithStatus{}}
	byCategory := make(map[string]*achievement.CategorySummary)

	for rows.Next() {
		a := &achievement.WithStatus{}
		err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Icon, &a.Category,
			&a.TriggerType, &a.TriggerValue, &a.IsActive, &a.CreatedAt,
			&a.Progress, &a.Target, &a.UnlockedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}

		ua := achievement.UserAchievement{Progress: a.Progress, Target: a.Target, UnlockedAt: a.UnlockedAt}
		a.State = ua.State()

		resp.Achievements = append(resp.Achievements, a)

		c := byCategory[a.Category]
		if c == nil {
			c = &achievement.CategorySummary{Category: a.Category}
			byCategory[a.Category] = c
			resp.Categories = append(resp.Categories, c)
		}
		c.Total++
		if a.State == achievement.StateUnlocked {
			c.Unlocked++
			resp.TotalUnlocked++
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return resp, nil
}

func (s *AchievementService) activeDefinitions(ctx context.Context) ([]*achievement.Definition, error) {
	query := `
		SELECT id, title, description, icon, category, trigger_type, trigger_value, is_active, created_at
		FROM achievement_definitions
		WHERE is_active = true
		ORDER BY trigger_value ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievement definitions: %w", err)
	}
	defer rows.Close()

	var defs []*achievement.Definition
	for rows.Next() {
		d := &achievement.Definition{}
		err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Icon, &d.Category,
			&d.TriggerType, &d.TriggerValue, &d.IsActive, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// collectMetrics gathers every value the trigger types watch. The
// snapshot and streak reads retry once on failure; the caller treats
// any remaining error as non-fatal to the triggering request.
func (s *AchievementService) collectMetrics(ctx context.Context, userID string) (achievement.Metrics, error) {
	snap, err := s.analytics.Snapshot(ctx, userID)
	if err != nil {
		log.Printf("collectMetrics: snapshot read failed for user %s, retrying once: %v", userID, err)
		if snap, err = s.analytics.Snapshot(ctx, userID); err != nil {
			return achievement.Metrics{}, fmt.Errorf("stats snapshot unavailable: %w", err)
		}
	}

	streaks, err := s.analytics.Streaks(ctx, userID)
	if err != nil {
		log.Printf("collectMetrics: streak read failed for user %s, retrying once: %v", userID, err)
		if streaks, err = s.analytics.Streaks(ctx, userID); err != nil {
			return achievement.Metrics{}, fmt.Errorf("streaks unavailable: %w", err)
		}
	}

	monthly, err := s.analytics.MonthlyCompletedTasks(ctx, userID)
	if err != nil {
		return achievement.Metrics{}, err
	}

	activeDays, err := s.analytics.ActiveDays(ctx, userID)
	if err != nil {
		return achievement.Metrics{}, err
	}

	fastGoals, err := s.analytics.FastCompletedGoals(ctx, userID)
	if err != nil {
		return achievement.Metrics{}, err
	}

	early, late, err := s.activities.CountCompletionsByHour(ctx, userID, earlyMorningCutoffHour, lateNightCutoffHour)
	if err != nil {
		return achievement.Metrics{}, err
	}

	return achievement.Metrics{
		TotalGoals:        snap.TotalGoals,
		CompletedGoals:    snap.CompletedGoals,
		CompletedTasks:    snap.CompletedTasks,
		CurrentStreak:     streaks.CurrentStreak,
		LongestStreak:     streaks.LongestStreak,
		MonthlyTasks:      monthly,
		EarlyMorningTasks: early,
		LateNightTasks:    late,
		FastGoals:         fastGoals,
		ActiveDays:        activeDays,
	}, nil
}
