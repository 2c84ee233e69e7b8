package repository

import (
	"context"

	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeatRepository interface {
	ListByFlight(ctx context.Context, flightID, cabinClass string) ([]domain.Seat, error)
	CountAvailable(ctx context.Context, flightID, cabinClass string) (int, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

// ListByFlight returns seats for a flight. An empty cabinClass means all
// cabins.
func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID, cabinClass string) ([]domain.Seat, error) {
	query := `SELECT id, flight_id, seat_number, cabin_class, occupied FROM seats WHERE flight_id=$1`
	args := []interface{}{flightID}
	if cabinClass != "" {
		query += ` AND cabin_class=$2`
		args = append(args, cabinClass)
	}
	query += ` ORDER BY seat_number`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.FlightID, &s.SeatNumber, &s.CabinClass, &s.Occupied); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGSeatRepository) CountAvailable(ctx context.Context, flightID, cabinClass string) (int, error) {
	query := `SELECT count(*) FROM seats WHERE flight_id=$1 AND occupied=false`
	args := []interface{}{flightID}
	if cabinClass != "" {
		query += ` AND cabin_class=$2`
		args = append(args, cabinClass)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

var _ SeatRepository = (*PGSeatRepository)(nil)
