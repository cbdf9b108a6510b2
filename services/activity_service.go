package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"goalForgeAPI/internal/activity"
)

type ActivityService struct {
	db *pgxpool.Pool
}

func NewActivityService(db *pgxpool.Pool) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) Record(ctx context.Context, userID, actType, description string, metadata map[string]any) error {
	metadataJSON, _ := json.Marshal(metadata)

	query := `
		INSERT INTO activities (id, user_id, type, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := s.db.Exec(ctx, query, uuid.New().String(), userID, actType, description, metadataJSON)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

func (s *ActivityService) GetRecent(ctx context.Context, userID string, limit int) ([]*activity.Activity, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := `
		SELECT id, user_id, type, description, metadata, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer rows.Close()

	var activities []*activity.Activity
	for rows.Next() {
		a := &activity.Activity{}
		var metadataJSON []byte
		err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &metadataJSON, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if len(metadataJSON) > 0 {
			_ = json.Unmarshal(metadataJSON, &a.Metadata)
		}
		activities = append(activities, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	if activities == nil {
		activities = []*activity.Activity{}
	}

	return activities, nil
}

// CountCompletionsByHour counts task_completed events before the morning
// cutoff and at or after the evening cutoff, by UTC hour of the event.
func (s *ActivityService) CountCompletionsByHour(ctx context.Context, userID string, morningBefore, eveningFrom int) (early int, late int, err error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE EXTRACT(HOUR FROM created_at AT TIME ZONE 'UTC') < $2),
			COUNT(*) FILTER (WHERE EXTRACT(HOUR FROM created_at AT TIME ZONE 'UTC') >= $3)
		FROM activities
		WHERE user_id = $1 AND type = $4
	`

	err = s.db.QueryRow(ctx, query, userID, morningBefore, eveningFrom, activity.TypeTaskCompleted).Scan(&early, &late)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count completions by hour: %w", err)
	}
	return early, late, nil
}
