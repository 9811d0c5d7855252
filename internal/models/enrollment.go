package models

import "time"

type Enrollment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	StudentNumber string    `json:"student_number"`
	Program       string    `json:"program"`
	ActivityID    int64     `json:"activity_id"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// EnrollmentView is an enrollment joined with its activity name. Email is only
// filled for the admin listing.
type EnrollmentView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	StudentNumber string    `json:"student_number"`
	Program       string    `json:"program"`
	Email         string    `json:"email,omitempty"`
	ActivityID    int64     `json:"activity_id"`
	ActivityName  string    `json:"activity_name"`
	RegisteredAt  time.Time `json:"registered_at"`
}
