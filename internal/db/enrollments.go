package db

import (
	"context"

	"kegiatan-kampus/internal/models"
)

func (q *Queries) EnrollmentExists(ctx context.Context, userID, activityID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = ? AND activity_id = ?)"

	var exists bool
	if err := q.queryRow(ctx, query, userID, activityID).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

// CreateEnrollment inserts e and fills its id. A second row for the same
// (user_id, activity_id) fails with ErrDuplicate.
func (q *Queries) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	query := `INSERT INTO enrollments (user_id, name, email, student_number, program, activity_id)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
	err := q.queryRow(ctx, query,
		e.UserID, e.Name, e.Email, e.StudentNumber, e.Program, e.ActivityID,
	).Scan(&e.ID)
	return translate(err)
}

// ListEnrollments returns every enrollment, newest first. A zero activityID
// disables the filter.
func (q *Queries) ListEnrollments(ctx context.Context, activityID int64) ([]models.EnrollmentView, error) {
	query := `SELECT e.id, e.name, e.student_number, e.program, e.email, e.activity_id, a.name, e.registered_at
		FROM enrollments e
		JOIN activities a ON e.activity_id = a.id`
	var args []any
	if activityID != 0 {
		query += " WHERE e.activity_id = ?"
		args = append(args, activityID)
	}
	query += " ORDER BY e.registered_at DESC, e.id DESC"

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []models.EnrollmentView{}
	for rows.Next() {
		var v models.EnrollmentView
		if err := rows.Scan(&v.ID, &v.Name, &v.StudentNumber, &v.Program, &v.Email,
			&v.ActivityID, &v.ActivityName, &v.RegisteredAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (q *Queries) ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentView, error) {
	query := `SELECT e.id, e.name, e.student_number, e.program, e.activity_id, a.name, e.registered_at
		FROM enrollments e
		JOIN activities a ON e.activity_id = a.id
		WHERE e.user_id = ?
		ORDER BY e.registered_at DESC, e.id DESC`

	rows, err := q.query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []models.EnrollmentView{}
	for rows.Next() {
		var v models.EnrollmentView
		if err := rows.Scan(&v.ID, &v.Name, &v.StudentNumber, &v.Program,
			&v.ActivityID, &v.ActivityName, &v.RegisteredAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
