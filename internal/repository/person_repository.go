package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

// PersonRepository persists trip members.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository constructs a person repository.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// ListByTrip returns all members of a trip ordered by name.
func (r *PersonRepository) ListByTrip(ctx context.Context, tripID string) ([]models.Person, error) {
	const query = `SELECT id, trip_id, name, color, notes, created_at, updated_at
FROM people WHERE trip_id = $1 ORDER BY name ASC`
	var people []models.Person
	if err := r.db.SelectContext(ctx, &people, query, tripID); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// GetByID fetches a person.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*models.Person, error) {
	const query = `SELECT id, trip_id, name, color, notes, created_at, updated_at
FROM people WHERE id = $1`
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		return nil, err
	}
	return &person, nil
}

// Create inserts a person.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now
	const query = `INSERT INTO people (id, trip_id, name, color, notes, created_at, updated_at)
VALUES (:id, :trip_id, :name, :color, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// Update modifies a person.
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	person.UpdatedAt = time.Now().UTC()
	const query = `UPDATE people SET name = :name, color = :color, notes = :notes, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// Delete removes a person; assignments and transports cascade.
func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM people WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}
