package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ProcessPayment(ctx context.Context, bookingID, method string) error
	DeleteBookings(ctx context.Context, bookingIDs []string) ([]domain.DeleteOutcome, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// GetByReference returns (nil, nil) when no booking matches, so callers can
// distinguish absence from a query failure.
func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, flight_id, passenger_name, email, cabin_class, seat_number, status, price_cents, created_at, updated_at FROM bookings WHERE reference=$1`, reference)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.FlightID, &b.PassengerName, &b.Email, &b.CabinClass, &b.SeatNumber, &b.Status, &b.PriceCents, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ProcessPayment(ctx context.Context, bookingID, method string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1, payment_method=$2, updated_at=now() WHERE id=$3 AND status IN ($4, $5)`,
		domain.BookingStatusPaid, method, bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("booking is not payable")
	}
	return nil
}

// DeleteBookings invokes the delete_bookings database procedure, which owns
// the cascade over seats and payments. The first result row reports the
// outcome for the whole batch.
func (r *PGBookingRepository) DeleteBookings(ctx context.Context, bookingIDs []string) ([]domain.DeleteOutcome, error) {
	rows, err := r.db.Query(ctx, `SELECT success, error_message FROM delete_bookings($1)`, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []domain.DeleteOutcome
	for rows.Next() {
		var o domain.DeleteOutcome
		var msg *string
		if err := rows.Scan(&o.Success, &msg); err != nil {
			return nil, err
		}
		if msg != nil {
			o.ErrorMessage = *msg
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
