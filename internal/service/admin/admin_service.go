package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/Domenick1991/airbooking-admin/internal/kafka"
	"github.com/Domenick1991/airbooking-admin/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const defaultErrorMessage = "Something went wrong"

// Result is the uniform outcome shape every admin action returns. Error is
// a short display-ready sentence, set only when Success is false. Failures
// never propagate as errors past this package.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BookingResult struct {
	Result
	Booking *domain.Booking `json:"booking,omitempty"`
}

type SeatsResult struct {
	Result
	Seats []domain.Seat `json:"seats,omitempty"`
}

// CountResult always carries a numeric Count, zero on failure, so the UI
// never renders an absent value.
type CountResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

type AdminUseCase interface {
	GetBooking(ctx context.Context, reference string) BookingResult
	GetSeats(ctx context.Context, flightID, cabinClass string) SeatsResult
	GetCabinAvailability(ctx context.Context, flightID, cabinClass string) CountResult
	ProcessPayment(ctx context.Context, bookingID, method string) Result
	DeleteBookings(ctx context.Context, rawBookingIDs string) Result
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AdminService struct {
	bookings           repository.BookingRepository
	seats              repository.SeatRepository
	producer           Producer
	adminEventsTopic   string
	notificationsTopic string
	actionTimeout      time.Duration
	validate           *validator.Validate
}

type AdminServiceOption func(*AdminService)

func WithNotificationsTopic(topic string) AdminServiceOption {
	return func(s *AdminService) {
		s.notificationsTopic = topic
	}
}

func WithActionTimeout(timeout time.Duration) AdminServiceOption {
	return func(s *AdminService) {
		s.actionTimeout = timeout
	}
}

func NewAdminService(
	bookings repository.BookingRepository,
	seats repository.SeatRepository,
	producer Producer,
	adminEventsTopic string,
	opts ...AdminServiceOption,
) *AdminService {
	service := &AdminService{
		bookings:         bookings,
		seats:            seats,
		producer:         producer,
		adminEventsTopic: adminEventsTopic,
		actionTimeout:    10 * time.Second,
		validate:         validator.New(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type getBookingInput struct {
	Reference string `validate:"required"`
}

type seatQueryInput struct {
	FlightID   string `validate:"required,uuid"`
	CabinClass string `validate:"-"`
}

type paymentInput struct {
	BookingID string `validate:"required,uuid"`
	Method    string `validate:"required"`
}

type deleteBookingsInput struct {
	BookingIDs []string `validate:"required,min=1,dive,uuid"`
}

// GetBooking looks up a booking by its reference. A missing record is a
// distinct domain failure, not a transport error.
func (s *AdminService) GetBooking(ctx context.Context, reference string) (res BookingResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("get booking panic: %v", r)
			res = BookingResult{Result: failure(defaultErrorMessage)}
		}
	}()

	if msg := s.firstViolation(getBookingInput{Reference: reference}); msg != "" {
		return BookingResult{Result: failure(msg)}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return BookingResult{Result: failure(errorMessage(err))}
	}
	if booking == nil {
		return BookingResult{Result: failure("Booking not found")}
	}
	return BookingResult{Result: success(), Booking: booking}
}

// GetSeats lists seats for a flight. An empty cabin class returns seats
// across all cabins.
func (s *AdminService) GetSeats(ctx context.Context, flightID, cabinClass string) (res SeatsResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("get seats panic: %v", r)
			res = SeatsResult{Result: failure(defaultErrorMessage)}
		}
	}()

	if msg := s.firstViolation(seatQueryInput{FlightID: flightID, CabinClass: cabinClass}); msg != "" {
		return SeatsResult{Result: failure(msg)}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	seats, err := s.seats.ListByFlight(ctx, flightID, cabinClass)
	if err != nil {
		return SeatsResult{Result: failure(errorMessage(err))}
	}
	return SeatsResult{Result: success(), Seats: seats}
}

// GetCabinAvailability returns the number of free seats. The count is zero,
// never absent, on any failure.
func (s *AdminService) GetCabinAvailability(ctx context.Context, flightID, cabinClass string) (res CountResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("get cabin availability panic: %v", r)
			res = CountResult{Success: false, Count: 0, Error: defaultErrorMessage}
		}
	}()

	if msg := s.firstViolation(seatQueryInput{FlightID: flightID, CabinClass: cabinClass}); msg != "" {
		return CountResult{Success: false, Count: 0, Error: msg}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.seats.CountAvailable(ctx, flightID, cabinClass)
	if err != nil {
		return CountResult{Success: false, Count: 0, Error: errorMessage(err)}
	}
	return CountResult{Success: true, Count: count}
}

// ProcessPayment marks a booking as paid through the backend. Atomicity of
// the state transition is owned by the delegate.
func (s *AdminService) ProcessPayment(ctx context.Context, bookingID, method string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("process payment panic: %v", r)
			res = failure(defaultErrorMessage)
		}
	}()

	if msg := s.firstViolation(paymentInput{BookingID: bookingID, Method: method}); msg != "" {
		return failure(msg)
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.bookings.ProcessPayment(callCtx, bookingID, method); err != nil {
		return failure(errorMessage(err))
	}

	event := kafka.AdminEvent{
		ID:         uuid.NewString(),
		Type:       "payment_processed",
		BookingIDs: []string{bookingID},
		OccurredAt: time.Now(),
	}
	if err := s.publish(ctx, s.adminEventsTopic, bookingID, event); err != nil {
		fmt.Printf("WARNING: Failed to publish payment_processed event for booking %s: %v\n", bookingID, err)
	}
	return success()
}

// DeleteBookings removes a batch of bookings through the delete_bookings
// database procedure. The raw input is a JSON-encoded array of UUID strings
// carried in a single form field; a malformed payload and a schema-invalid
// one fail with distinct messages.
func (s *AdminService) DeleteBookings(ctx context.Context, rawBookingIDs string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("delete bookings panic: %v", r)
			res = failure(defaultErrorMessage)
		}
	}()

	var ids []string
	if err := json.Unmarshal([]byte(rawBookingIDs), &ids); err != nil {
		return failure("Invalid booking IDs format")
	}

	if msg := s.firstViolation(deleteBookingsInput{BookingIDs: ids}); msg != "" {
		return failure(msg)
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	outcomes, err := s.bookings.DeleteBookings(callCtx, ids)
	if err != nil {
		return failure(errorMessage(err))
	}
	if len(outcomes) == 0 {
		return failure("Failed to delete bookings")
	}
	if !outcomes[0].Success {
		msg := outcomes[0].ErrorMessage
		if msg == "" {
			msg = "Failed to delete bookings"
		}
		return failure(msg)
	}

	event := kafka.AdminEvent{
		ID:         uuid.NewString(),
		Type:       "bookings_deleted",
		BookingIDs: ids,
		OccurredAt: time.Now(),
	}
	if err := s.publish(ctx, s.adminEventsTopic, ids[0], event); err != nil {
		fmt.Printf("WARNING: Failed to publish bookings_deleted event: %v\n", err)
	}
	if err := s.publish(ctx, s.notificationsTopic, ids[0], event); err != nil {
		fmt.Printf("WARNING: Failed to publish deletion notification: %v\n", err)
	}
	return success()
}

func (s *AdminService) publish(ctx context.Context, topic, key string, event kafka.AdminEvent) error {
	if s.producer == nil || topic == "" {
		return nil
	}
	return s.producer.Publish(ctx, topic, key, event)
}

func (s *AdminService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.actionTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.actionTimeout)
}

func success() Result {
	return Result{Success: true}
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return defaultErrorMessage
	}
	return err.Error()
}

// firstViolation returns the display message for the first violated rule
// only. Deliberate policy: messages depend on the declaration order of the
// constraints, so do not aggregate.
func (s *AdminService) firstViolation(input interface{}) string {
	err := s.validate.Struct(input)
	if err == nil {
		return ""
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok || len(violations) == 0 {
		return "Invalid input"
	}
	return violationMessage(violations[0])
}

func violationMessage(fe validator.FieldError) string {
	field := fe.StructField()
	switch {
	case field == "Reference":
		return "Booking reference is required"
	case field == "FlightID":
		return "Valid flight ID is required"
	case field == "BookingID":
		return "Valid booking ID is required"
	case field == "Method":
		return "Payment method is required"
	// dive violations report the element as BookingIDs[i]
	case strings.HasPrefix(field, "BookingIDs"):
		if fe.Tag() == "uuid" {
			return "Booking IDs must be valid UUIDs"
		}
		return "At least one booking must be selected"
	default:
		return "Invalid input"
	}
}

var _ AdminUseCase = (*AdminService)(nil)
