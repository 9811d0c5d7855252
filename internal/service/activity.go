package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/models"

	"github.com/go-playground/validator/v10"
)

type ActivityRepository interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetActivity(ctx context.Context, id int64) (*models.Activity, error)
	CreateActivity(ctx context.Context, a *models.Activity) error
	UpdateActivity(ctx context.Context, a *models.Activity) (int64, error)
	DeleteActivity(ctx context.Context, id int64) (int64, error)
}

// ActivityRequest is the body of create and update.
type ActivityRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Start       string `json:"start" validate:"required,datetime=2006-01-02"`
	End         string `json:"end" validate:"required,datetime=2006-01-02"`
}

type ActivityService struct {
	repo     ActivityRepository
	validate *validator.Validate
}

func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{
		repo:     repo,
		validate: newValidator(),
	}
}

// List returns every activity, latest start date first.
func (s *ActivityService) List(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.repo.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *ActivityService) Get(ctx context.Context, id int64) (*models.Activity, error) {
	a, err := s.repo.GetActivity(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity %d: %w", id, err)
	}
	return a, nil
}

func (s *ActivityService) Create(ctx context.Context, req ActivityRequest) (*models.Activity, error) {
	a, err := s.build(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	return a, nil
}

// Update overwrites activity id. Updating an id that does not exist is a
// silent no-op.
func (s *ActivityService) Update(ctx context.Context, id int64, req ActivityRequest) (*models.Activity, error) {
	a, err := s.build(req)
	if err != nil {
		return nil, err
	}
	a.ID = id

	if _, err := s.repo.UpdateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("update activity %d: %w", id, err)
	}
	return a, nil
}

func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("delete activity %d: %w", id, err)
	}
	return nil
}

func (s *ActivityService) build(req ActivityRequest) (*models.Activity, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	start, err := models.ParseDate(req.Start)
	if err != nil {
		return nil, newError(ErrValidation, "invalid fields: start")
	}
	end, err := models.ParseDate(req.End)
	if err != nil {
		return nil, newError(ErrValidation, "invalid fields: end")
	}
	if end.Before(start) {
		return nil, newError(ErrValidation, "end date must not be before start date")
	}

	return &models.Activity{
		Name:        req.Name,
		Description: req.Description,
		Start:       start,
		End:         end,
	}, nil
}
