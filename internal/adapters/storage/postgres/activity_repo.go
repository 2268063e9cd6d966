package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dulce-dosis-web/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Create(ctx context.Context, e activity.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_entries (
			id, user_id,
			kind, subject, detail,
			occurred_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		e.UserID,
		string(e.Kind),
		e.Subject,
		e.Detail,
		e.OccurredAt,
	)
	return err
}

func (r *ActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]activity.Entry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			kind, subject, detail,
			occurred_at
		FROM activity_entries
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		var kind string
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&kind,
			&e.Subject,
			&e.Detail,
			&e.OccurredAt,
		); err != nil {
			return nil, err
		}
		e.Kind = activity.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
