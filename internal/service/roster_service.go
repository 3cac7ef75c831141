package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	"github.com/tripgrid/trip-logistics-api/pkg/colorutil"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
)

type personRepository interface {
	ListByTrip(ctx context.Context, tripID string) ([]models.Person, error)
	GetByID(ctx context.Context, id string) (*models.Person, error)
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, id string) error
}

type roomRepository interface {
	ListByTrip(ctx context.Context, tripID string) ([]models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// RosterService manages a trip's people and rooms.
type RosterService struct {
	people    personRepository
	rooms     roomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(people personRepository, rooms roomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{people: people, rooms: rooms, cache: cache, validator: validate, logger: logger}
}

// CreatePersonRequest describes a person create payload.
type CreatePersonRequest struct {
	Name  string  `json:"name" validate:"required"`
	Color *string `json:"color"`
	Notes *string `json:"notes"`
}

// CreateRoomRequest describes a room create payload.
type CreateRoomRequest struct {
	Name     string  `json:"name" validate:"required"`
	Capacity int     `json:"capacity" validate:"gte=0"`
	Notes    *string `json:"notes"`
}

// ListPeople returns the trip's members.
func (s *RosterService) ListPeople(ctx context.Context, tripID string) ([]models.Person, error) {
	people, err := s.people.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list people")
	}
	return people, nil
}

// CreatePerson adds a member to a trip. A recognizable hex color is
// normalized on the way in; anything else is stored as-is and the
// calendar falls back at render time.
func (s *RosterService) CreatePerson(ctx context.Context, tripID string, req CreatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	color := req.Color
	if color != nil {
		if normalized, ok := colorutil.Normalize(*color); ok {
			color = &normalized
		}
	}
	person := &models.Person{TripID: tripID, Name: req.Name, Color: color, Notes: req.Notes}
	if err := s.people.Create(ctx, person); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create person")
	}
	s.invalidateCalendar(ctx, tripID)
	return person, nil
}

// UpdatePerson modifies a member.
func (s *RosterService) UpdatePerson(ctx context.Context, id string, req CreatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load person")
	}
	person.Name = req.Name
	person.Color = req.Color
	if person.Color != nil {
		if normalized, ok := colorutil.Normalize(*person.Color); ok {
			person.Color = &normalized
		}
	}
	person.Notes = req.Notes
	if err := s.people.Update(ctx, person); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update person")
	}
	s.invalidateCalendar(ctx, person.TripID)
	return person, nil
}

// DeletePerson removes a member; their assignments and transports
// cascade at the schema level.
func (s *RosterService) DeletePerson(ctx context.Context, id string) error {
	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "person not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load person")
	}
	if err := s.people.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete person")
	}
	s.invalidateCalendar(ctx, person.TripID)
	return nil
}

// ListRooms returns the trip's rooms.
func (s *RosterService) ListRooms(ctx context.Context, tripID string) ([]models.Room, error) {
	rooms, err := s.rooms.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// CreateRoom adds a room to a trip.
func (s *RosterService) CreateRoom(ctx context.Context, tripID string, req CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	room := &models.Room{TripID: tripID, Name: req.Name, Capacity: req.Capacity, Notes: req.Notes}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	s.invalidateCalendar(ctx, tripID)
	return room, nil
}

// UpdateRoom modifies a room.
func (s *RosterService) UpdateRoom(ctx context.Context, id string, req CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Notes = req.Notes
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	s.invalidateCalendar(ctx, room.TripID)
	return room, nil
}

// DeleteRoom removes a room; assignments cascade.
func (s *RosterService) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}
	s.invalidateCalendar(ctx, room.TripID)
	return nil
}

func (s *RosterService) invalidateCalendar(ctx context.Context, tripID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, calendarCachePattern(tripID))
	}
}
