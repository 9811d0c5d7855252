package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/models"

	"github.com/go-playground/validator/v10"
)

// EnrollmentStore is what an enrollment reads and writes inside its
// transaction.
type EnrollmentStore interface {
	GetActivity(ctx context.Context, id int64) (*models.Activity, error)
	EnrollmentExists(ctx context.Context, userID, activityID int64) (bool, error)
	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
}

type EnrollmentRepository interface {
	WithTx(ctx context.Context, fn func(tx EnrollmentStore) error) error
	ListEnrollments(ctx context.Context, activityID int64) ([]models.EnrollmentView, error)
	ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.EnrollmentView, error)
}

type enrollmentRepository struct {
	*db.DB
}

// NewEnrollmentRepository adapts database to EnrollmentRepository.
func NewEnrollmentRepository(database *db.DB) EnrollmentRepository {
	return enrollmentRepository{database}
}

func (r enrollmentRepository) WithTx(ctx context.Context, fn func(tx EnrollmentStore) error) error {
	return r.DB.WithTx(ctx, func(q *db.Queries) error {
		return fn(q)
	})
}

type EnrollRequest struct {
	ActivityID    int64  `json:"activity_id" validate:"required,gt=0"`
	StudentNumber string `json:"student_number" validate:"required"`
	Program       string `json:"program" validate:"required"`
}

type EnrollmentService struct {
	repo     EnrollmentRepository
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

// NewEnrollmentService builds the service. Deadlines are evaluated as
// calendar dates in loc.
func NewEnrollmentService(repo EnrollmentRepository, loc *time.Location) *EnrollmentService {
	if loc == nil {
		loc = time.Local
	}
	return &EnrollmentService{
		repo:     repo,
		validate: newValidator(),
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *EnrollmentService) WithClock(now func() time.Time) *EnrollmentService {
	s.now = now
	return s
}

// Enroll registers user for an activity. The checks run in order and the
// first failure wins:
//
//  1. the caller is a student
//  2. activity_id, student_number and program are present
//  3. the activity exists
//  4. the activity's end date has not passed
//  5. the caller is not enrolled yet
//
// Steps 3 to 5 and the insert share one transaction, and the storage UNIQUE
// (user_id, activity_id) constraint decides concurrent attempts.
func (s *EnrollmentService) Enroll(ctx context.Context, user models.SessionUser, req EnrollRequest) (*models.Enrollment, error) {
	if user.Role != models.RoleStudent {
		return nil, ErrStudentsOnly
	}

	req.StudentNumber = strings.TrimSpace(req.StudentNumber)
	req.Program = strings.TrimSpace(req.Program)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	enrollment := &models.Enrollment{
		UserID:        user.ID,
		Name:          user.Username,
		Email:         user.Email,
		StudentNumber: req.StudentNumber,
		Program:       req.Program,
		ActivityID:    req.ActivityID,
	}

	err := s.repo.WithTx(ctx, func(tx EnrollmentStore) error {
		activity, err := tx.GetActivity(ctx, req.ActivityID)
		if errors.Is(err, db.ErrNotFound) {
			return ErrActivityNotFound
		}
		if err != nil {
			return fmt.Errorf("get activity %d: %w", req.ActivityID, err)
		}

		if !activity.OpenAt(s.now(), s.loc) {
			return ErrRegistrationClosed
		}

		exists, err := tx.EnrollmentExists(ctx, user.ID, req.ActivityID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if exists {
			return ErrAlreadyEnrolled
		}

		if err := tx.CreateEnrollment(ctx, enrollment); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return ErrAlreadyEnrolled
			}
			return fmt.Errorf("insert enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	return enrollment, nil
}

// ListForAdmin returns all enrollments, or those of one activity when
// activityID is non-zero.
func (s *EnrollmentService) ListForAdmin(ctx context.Context, activityID int64) ([]models.EnrollmentView, error) {
	views, err := s.repo.ListEnrollments(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return views, nil
}

// ListForStudent returns the caller's own enrollment history.
func (s *EnrollmentService) ListForStudent(ctx context.Context, user models.SessionUser) ([]models.EnrollmentView, error) {
	views, err := s.repo.ListEnrollmentsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments of user %d: %w", user.ID, err)
	}
	return views, nil
}
