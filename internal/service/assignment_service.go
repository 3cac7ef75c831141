package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
)

type assignmentRepository interface {
	ListByTrip(ctx context.Context, tripID string) ([]models.RoomAssignment, error)
	GetByID(ctx context.Context, id string) (*models.RoomAssignment, error)
	Create(ctx context.Context, assignment *models.RoomAssignment) error
	Update(ctx context.Context, assignment *models.RoomAssignment) error
	Delete(ctx context.Context, id string) error
}

// AssignmentService manages room-assignment spans.
type AssignmentService struct {
	repo      assignmentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the service.
func NewAssignmentService(repo assignmentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// AssignmentRequest describes create/update payload. Dates use the
// check-in/checkout model: end_date is the departure morning and is
// not an occupied night.
type AssignmentRequest struct {
	RoomID    string `json:"room_id" validate:"required"`
	PersonID  string `json:"person_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// List returns the trip's assignments.
func (s *AssignmentService) List(ctx context.Context, tripID string) ([]models.RoomAssignment, error) {
	assignments, err := s.repo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Create registers a stay.
func (s *AssignmentService) Create(ctx context.Context, tripID string, req AssignmentRequest) (*models.RoomAssignment, error) {
	start, end, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}
	assignment := &models.RoomAssignment{
		TripID:    tripID,
		RoomID:    req.RoomID,
		PersonID:  req.PersonID,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.invalidateCalendar(ctx, tripID)
	return assignment, nil
}

// Update modifies a stay.
func (s *AssignmentService) Update(ctx context.Context, id string, req AssignmentRequest) (*models.RoomAssignment, error) {
	start, end, err := s.parseRange(req)
	if err != nil {
		return nil, err
	}
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	assignment.RoomID = req.RoomID
	assignment.PersonID = req.PersonID
	assignment.StartDate = start
	assignment.EndDate = end
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	s.invalidateCalendar(ctx, assignment.TripID)
	return assignment, nil
}

// Delete removes a stay.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.invalidateCalendar(ctx, assignment.TripID)
	return nil
}

func (s *AssignmentService) parseRange(req AssignmentRequest) (time.Time, time.Time, error) {
	if err := s.validator.Struct(req); err != nil {
		return time.Time{}, time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start_date %q, expected YYYY-MM-DD", req.StartDate))
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end_date %q, expected YYYY-MM-DD", req.EndDate))
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "end_date must be after start_date (at least one night)")
	}
	return start, end, nil
}

func (s *AssignmentService) invalidateCalendar(ctx context.Context, tripID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, calendarCachePattern(tripID))
	}
}
