package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

// TransportRepository persists arrivals and departures.
type TransportRepository struct {
	db *sqlx.DB
}

// NewTransportRepository constructs a transport repository.
func NewTransportRepository(db *sqlx.DB) *TransportRepository {
	return &TransportRepository{db: db}
}

// List returns transports matching the filter, ordered by datetime.
func (r *TransportRepository) List(ctx context.Context, filter models.TransportFilter) ([]models.Transport, error) {
	where := []string{"trip_id = $1"}
	args := []interface{}{filter.TripID}
	if filter.Type != nil {
		where = append(where, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, string(*filter.Type))
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("datetime >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("datetime <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}

	query := fmt.Sprintf(`SELECT id, trip_id, person_id, type, datetime, location, needs_pickup, driver_id, created_at, updated_at
FROM transports WHERE %s ORDER BY datetime ASC, id ASC`, strings.Join(where, " AND "))
	var transports []models.Transport
	if err := r.db.SelectContext(ctx, &transports, query, args...); err != nil {
		return nil, fmt.Errorf("list transports: %w", err)
	}
	return transports, nil
}

// ListPendingPickups returns pickups still waiting for a driver at or
// after the provided instant.
func (r *TransportRepository) ListPendingPickups(ctx context.Context, tripID string, since time.Time) ([]models.Transport, error) {
	const query = `SELECT id, trip_id, person_id, type, datetime, location, needs_pickup, driver_id, created_at, updated_at
FROM transports WHERE trip_id = $1 AND needs_pickup = TRUE AND driver_id IS NULL AND datetime >= $2
ORDER BY datetime ASC, id ASC`
	var transports []models.Transport
	if err := r.db.SelectContext(ctx, &transports, query, tripID, since); err != nil {
		return nil, fmt.Errorf("list pending pickups: %w", err)
	}
	return transports, nil
}

// GetByID fetches a transport.
func (r *TransportRepository) GetByID(ctx context.Context, id string) (*models.Transport, error) {
	const query = `SELECT id, trip_id, person_id, type, datetime, location, needs_pickup, driver_id, created_at, updated_at
FROM transports WHERE id = $1`
	var transport models.Transport
	if err := r.db.GetContext(ctx, &transport, query, id); err != nil {
		return nil, err
	}
	return &transport, nil
}

// Create inserts a transport.
func (r *TransportRepository) Create(ctx context.Context, transport *models.Transport) error {
	if transport.ID == "" {
		transport.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if transport.CreatedAt.IsZero() {
		transport.CreatedAt = now
	}
	transport.UpdatedAt = now
	const query = `INSERT INTO transports (id, trip_id, person_id, type, datetime, location, needs_pickup, driver_id, created_at, updated_at)
VALUES (:id, :trip_id, :person_id, :type, :datetime, :location, :needs_pickup, :driver_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, transport); err != nil {
		return fmt.Errorf("create transport: %w", err)
	}
	return nil
}

// Update modifies a transport.
func (r *TransportRepository) Update(ctx context.Context, transport *models.Transport) error {
	transport.UpdatedAt = time.Now().UTC()
	const query = `UPDATE transports SET person_id = :person_id, type = :type, datetime = :datetime,
location = :location, needs_pickup = :needs_pickup, driver_id = :driver_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, transport); err != nil {
		return fmt.Errorf("update transport: %w", err)
	}
	return nil
}

// ClaimPickup assigns a driver to an unclaimed pickup. Returns false
// when the row was already claimed or does not need a pickup.
func (r *TransportRepository) ClaimPickup(ctx context.Context, id, driverID string) (bool, error) {
	const query = `UPDATE transports SET driver_id = $2, updated_at = $3
WHERE id = $1 AND needs_pickup = TRUE AND driver_id IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, driverID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("claim pickup: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim pickup rows: %w", err)
	}
	return affected > 0, nil
}

// ReleasePickup clears the driver on a transport.
func (r *TransportRepository) ReleasePickup(ctx context.Context, id string) error {
	const query = `UPDATE transports SET driver_id = NULL, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("release pickup: %w", err)
	}
	return nil
}

// Delete removes a transport.
func (r *TransportRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM transports WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete transport: %w", err)
	}
	return nil
}
