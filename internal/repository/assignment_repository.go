package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

// AssignmentRepository persists room-assignment spans.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByTrip returns all assignments for a trip.
func (r *AssignmentRepository) ListByTrip(ctx context.Context, tripID string) ([]models.RoomAssignment, error) {
	const query = `SELECT id, trip_id, room_id, person_id, start_date, end_date, created_at, updated_at
FROM room_assignments WHERE trip_id = $1 ORDER BY start_date ASC, id ASC`
	var assignments []models.RoomAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, tripID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListByTripAndWindow returns assignments whose stay intersects the
// inclusive day window. end_date is exclusive checkout, so the match is
// end_date > window start and start_date <= window end.
func (r *AssignmentRepository) ListByTripAndWindow(ctx context.Context, tripID string, from, to time.Time) ([]models.RoomAssignment, error) {
	const query = `SELECT id, trip_id, room_id, person_id, start_date, end_date, created_at, updated_at
FROM room_assignments WHERE trip_id = $1 AND end_date > $2 AND start_date <= $3 ORDER BY start_date ASC, id ASC`
	var assignments []models.RoomAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, tripID, from, to); err != nil {
		return nil, fmt.Errorf("list assignments by window: %w", err)
	}
	return assignments, nil
}

// GetByID fetches an assignment.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*models.RoomAssignment, error) {
	const query = `SELECT id, trip_id, room_id, person_id, start_date, end_date, created_at, updated_at
FROM room_assignments WHERE id = $1`
	var assignment models.RoomAssignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create inserts an assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.RoomAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now
	const query = `INSERT INTO room_assignments (id, trip_id, room_id, person_id, start_date, end_date, created_at, updated_at)
VALUES (:id, :trip_id, :room_id, :person_id, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update modifies an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.RoomAssignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE room_assignments SET room_id = :room_id, person_id = :person_id,
start_date = :start_date, end_date = :end_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM room_assignments WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
