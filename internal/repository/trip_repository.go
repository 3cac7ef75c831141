package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

// TripRepository persists trips.
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository constructs a trip repository.
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// List returns trips matching the filter.
func (r *TripRepository) List(ctx context.Context, filter models.TripFilter) ([]models.Trip, int, error) {
	where := "1=1"
	args := []interface{}{}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR destination ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, name, destination, start_date, end_date, created_at, updated_at
FROM trips WHERE %s ORDER BY start_date DESC LIMIT %d OFFSET %d`, where, size, offset)
	var trips []models.Trip
	if err := r.db.SelectContext(ctx, &trips, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list trips: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM trips WHERE %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count trips: %w", err)
	}
	return trips, total, nil
}

// GetByID fetches a trip.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	const query = `SELECT id, name, destination, start_date, end_date, created_at, updated_at
FROM trips WHERE id = $1`
	var trip models.Trip
	if err := r.db.GetContext(ctx, &trip, query, id); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Create inserts a trip.
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now
	const query = `INSERT INTO trips (id, name, destination, start_date, end_date, created_at, updated_at)
VALUES (:id, :name, :destination, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

// Update modifies a trip.
func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	trip.UpdatedAt = time.Now().UTC()
	const query = `UPDATE trips SET name = :name, destination = :destination, start_date = :start_date,
end_date = :end_date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	return nil
}

// Delete removes a trip; dependent rows cascade at the schema level.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return nil
}
