package db

import (
	"context"

	"kegiatan-kampus/internal/models"
)

const activityColumns = "id, name, description, start_date, end_date, created_at"

func (q *Queries) ListActivities(ctx context.Context) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities ORDER BY start_date DESC, id DESC"

	rows, err := q.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Start, &a.End, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (q *Queries) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE id = ?"

	a := &models.Activity{}
	err := q.queryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Description, &a.Start, &a.End, &a.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func (q *Queries) CreateActivity(ctx context.Context, a *models.Activity) error {
	query := "INSERT INTO activities (name, description, start_date, end_date) VALUES (?, ?, ?, ?) RETURNING id"
	err := q.queryRow(ctx, query, a.Name, a.Description, a.Start, a.End).Scan(&a.ID)
	return translate(err)
}

// UpdateActivity overwrites every editable column and reports how many rows
// matched. A missing id is not an error.
func (q *Queries) UpdateActivity(ctx context.Context, a *models.Activity) (int64, error) {
	query := "UPDATE activities SET name = ?, description = ?, start_date = ?, end_date = ? WHERE id = ?"
	res, err := q.exec(ctx, query, a.Name, a.Description, a.Start, a.End, a.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteActivity(ctx context.Context, id int64) (int64, error) {
	res, err := q.exec(ctx, "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
