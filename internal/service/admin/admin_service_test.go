package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingRepository is a mock implementation of repository.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ProcessPayment(ctx context.Context, bookingID, method string) error {
	args := m.Called(ctx, bookingID, method)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteBookings(ctx context.Context, bookingIDs []string) ([]domain.DeleteOutcome, error) {
	args := m.Called(ctx, bookingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeleteOutcome), args.Error(1)
}

// MockSeatRepository is a mock implementation of repository.SeatRepository
type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) ListByFlight(ctx context.Context, flightID, cabinClass string) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID, cabinClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) CountAvailable(ctx context.Context, flightID, cabinClass string) (int, error) {
	args := m.Called(ctx, flightID, cabinClass)
	return args.Int(0), args.Error(1)
}

// MockProducer is a mock implementation of the Producer interface
type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

const (
	testFlightID  = "0b0ef38a-3a3f-4f0a-9a55-0f5ef6c6f25e"
	testBookingID = "8f8a8f64-57e2-4f26-9e20-2a0a38f3a111"
)

func newTestService(bookings *MockBookingRepository, seats *MockSeatRepository, opts ...AdminServiceOption) *AdminService {
	return NewAdminService(bookings, seats, nil, "", opts...)
}

func TestGetBooking_success(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	booking := &domain.Booking{
		ID:        testBookingID,
		Reference: "ABC123",
		Status:    domain.BookingStatusConfirmed,
	}
	bookings.On("GetByReference", mock.Anything, "ABC123").Return(booking, nil)

	res := service.GetBooking(context.Background(), "ABC123")

	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, booking, res.Booking)
	bookings.AssertExpectations(t)
}

func TestGetBooking_emptyReferenceSkipsBackend(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.GetBooking(context.Background(), "")

	assert.False(t, res.Success)
	assert.Equal(t, "Booking reference is required", res.Error)
	assert.Nil(t, res.Booking)
	bookings.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
}

func TestGetBooking_notFound(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	bookings.On("GetByReference", mock.Anything, "NOPE99").Return(nil, nil)

	res := service.GetBooking(context.Background(), "NOPE99")

	assert.False(t, res.Success)
	assert.Equal(t, "Booking not found", res.Error)
	bookings.AssertExpectations(t)
}

func TestGetBooking_backendError(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	bookings.On("GetByReference", mock.Anything, "ABC123").Return(nil, errors.New("connection refused"))

	res := service.GetBooking(context.Background(), "ABC123")

	assert.False(t, res.Success)
	assert.Equal(t, "connection refused", res.Error)
}

func TestGetSeats_success(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	expected := []domain.Seat{
		{ID: "s1", FlightID: testFlightID, SeatNumber: "12A", CabinClass: "economy"},
		{ID: "s2", FlightID: testFlightID, SeatNumber: "12B", CabinClass: "economy", Occupied: true},
	}
	seats.On("ListByFlight", mock.Anything, testFlightID, "economy").Return(expected, nil)

	res := service.GetSeats(context.Background(), testFlightID, "economy")

	assert.True(t, res.Success)
	assert.Equal(t, expected, res.Seats)
	seats.AssertExpectations(t)
}

func TestGetSeats_emptyCabinClassIsAllowed(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	seats.On("ListByFlight", mock.Anything, testFlightID, "").Return([]domain.Seat{}, nil)

	res := service.GetSeats(context.Background(), testFlightID, "")

	assert.True(t, res.Success)
	seats.AssertExpectations(t)
}

func TestGetSeats_invalidFlightID(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.GetSeats(context.Background(), "not-a-uuid", "economy")

	assert.False(t, res.Success)
	assert.Equal(t, "Valid flight ID is required", res.Error)
	seats.AssertNotCalled(t, "ListByFlight", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCabinAvailability_success(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	seats.On("CountAvailable", mock.Anything, testFlightID, "business").Return(7, nil)

	res := service.GetCabinAvailability(context.Background(), testFlightID, "business")

	assert.True(t, res.Success)
	assert.Equal(t, 7, res.Count)
	assert.Empty(t, res.Error)
}

func TestGetCabinAvailability_backendErrorKeepsCountZero(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	seats.On("CountAvailable", mock.Anything, testFlightID, "").Return(0, errors.New("timeout"))

	res := service.GetCabinAvailability(context.Background(), testFlightID, "")

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, "timeout", res.Error)
}

func TestGetCabinAvailability_validationFailureKeepsCountZero(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.GetCabinAvailability(context.Background(), "", "economy")

	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Count)
	assert.NotEmpty(t, res.Error)
	seats.AssertNotCalled(t, "CountAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPayment_success(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	bookings.On("ProcessPayment", mock.Anything, testBookingID, "card").Return(nil)

	res := service.ProcessPayment(context.Background(), testBookingID, "card")

	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	bookings.AssertExpectations(t)
}

func TestProcessPayment_missingMethod(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.ProcessPayment(context.Background(), testBookingID, "")

	assert.False(t, res.Success)
	assert.Equal(t, "Payment method is required", res.Error)
	bookings.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPayment_invalidBookingID(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.ProcessPayment(context.Background(), "123", "card")

	assert.False(t, res.Success)
	assert.Equal(t, "Valid booking ID is required", res.Error)
	bookings.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessPayment_backendError(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	bookings.On("ProcessPayment", mock.Anything, testBookingID, "card").Return(errors.New("booking is not payable"))

	res := service.ProcessPayment(context.Background(), testBookingID, "card")

	assert.False(t, res.Success)
	assert.Equal(t, "booking is not payable", res.Error)
}

func TestProcessPayment_publishesEvent(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	producer := &MockProducer{}
	service := NewAdminService(bookings, seats, producer, "admin-events")

	bookings.On("ProcessPayment", mock.Anything, testBookingID, "card").Return(nil)
	producer.On("Publish", mock.Anything, "admin-events", testBookingID, mock.Anything).Return(nil)

	res := service.ProcessPayment(context.Background(), testBookingID, "card")

	assert.True(t, res.Success)
	producer.AssertExpectations(t)
}

func TestProcessPayment_publishFailureDoesNotFailAction(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	producer := &MockProducer{}
	service := NewAdminService(bookings, seats, producer, "admin-events")

	bookings.On("ProcessPayment", mock.Anything, testBookingID, "card").Return(nil)
	producer.On("Publish", mock.Anything, "admin-events", testBookingID, mock.Anything).Return(errors.New("broker down"))

	res := service.ProcessPayment(context.Background(), testBookingID, "card")

	assert.True(t, res.Success)
}

func TestDeleteBookings_success(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	ids := []string{testBookingID}
	bookings.On("DeleteBookings", mock.Anything, ids).Return([]domain.DeleteOutcome{{Success: true}}, nil)

	res := service.DeleteBookings(context.Background(), `["`+testBookingID+`"]`)

	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	bookings.AssertExpectations(t)
}

func TestDeleteBookings_invalidJSON(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.DeleteBookings(context.Background(), "not json at all")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid booking IDs format", res.Error)
	bookings.AssertNotCalled(t, "DeleteBookings", mock.Anything, mock.Anything)
}

func TestDeleteBookings_emptyArray(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.DeleteBookings(context.Background(), "[]")

	assert.False(t, res.Success)
	assert.Equal(t, "At least one booking must be selected", res.Error)
	bookings.AssertNotCalled(t, "DeleteBookings", mock.Anything, mock.Anything)
}

func TestDeleteBookings_nonUUIDMember(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	res := service.DeleteBookings(context.Background(), `["abc", "def"]`)

	assert.False(t, res.Success)
	assert.Equal(t, "Booking IDs must be valid UUIDs", res.Error)
	bookings.AssertNotCalled(t, "DeleteBookings", mock.Anything, mock.Anything)
}

func TestDeleteBookings_jsonAndSchemaMessagesDiffer(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	jsonRes := service.DeleteBookings(context.Background(), "{broken")
	schemaRes := service.DeleteBookings(context.Background(), "[]")

	assert.False(t, jsonRes.Success)
	assert.False(t, schemaRes.Success)
	assert.NotEqual(t, jsonRes.Error, schemaRes.Error)
}

func TestDeleteBookings_procedureReportsFailure(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	ids := []string{testBookingID}
	bookings.On("DeleteBookings", mock.Anything, ids).
		Return([]domain.DeleteOutcome{{Success: false, ErrorMessage: "bookings are locked"}}, nil)

	res := service.DeleteBookings(context.Background(), `["`+testBookingID+`"]`)

	assert.False(t, res.Success)
	assert.Equal(t, "bookings are locked", res.Error)
}

func TestDeleteBookings_procedureFailureWithoutMessage(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	ids := []string{testBookingID}
	bookings.On("DeleteBookings", mock.Anything, ids).
		Return([]domain.DeleteOutcome{{Success: false}}, nil)

	res := service.DeleteBookings(context.Background(), `["`+testBookingID+`"]`)

	assert.False(t, res.Success)
	assert.Equal(t, "Failed to delete bookings", res.Error)
}

func TestDeleteBookings_emptyResultSet(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	ids := []string{testBookingID}
	bookings.On("DeleteBookings", mock.Anything, ids).Return([]domain.DeleteOutcome{}, nil)

	res := service.DeleteBookings(context.Background(), `["`+testBookingID+`"]`)

	assert.False(t, res.Success)
	assert.Equal(t, "Failed to delete bookings", res.Error)
}

func TestDeleteBookings_backendError(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats)

	ids := []string{testBookingID}
	bookings.On("DeleteBookings", mock.Anything, ids).Return(nil, errors.New("procedure missing"))

	res := service.DeleteBookings(context.Background(), `["`+testBookingID+`"]`)

	assert.False(t, res.Success)
	assert.Equal(t, "procedure missing", res.Error)
}

func TestDeleteBookings_publishesNotification(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	producer := &MockProducer{}
	service := NewAdminService(bookings, seats, producer, "admin-events",
		WithNotificationsTopic("notifications"))

	ids := []string{testBookingID}
	bookings.On("DeleteBookings", mock.Anything, ids).Return([]domain.DeleteOutcome{{Success: true}}, nil)
	producer.On("Publish", mock.Anything, "admin-events", testBookingID, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, "notifications", testBookingID, mock.Anything).Return(nil)

	res := service.DeleteBookings(context.Background(), `["`+testBookingID+`"]`)

	assert.True(t, res.Success)
	producer.AssertExpectations(t)
}

func TestActionTimeoutIsApplied(t *testing.T) {
	bookings := &MockBookingRepository{}
	seats := &MockSeatRepository{}
	service := newTestService(bookings, seats, WithActionTimeout(50*time.Millisecond))

	bookings.On("GetByReference", mock.Anything, "ABC123").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 40*time.Millisecond)
		}).
		Return(nil, nil)

	service.GetBooking(context.Background(), "ABC123")
	bookings.AssertExpectations(t)
}

func TestPanicIsNormalized(t *testing.T) {
	seats := &MockSeatRepository{}
	// nil booking repository forces a panic inside the wrapper
	service := NewAdminService(nil, seats, nil, "")

	res := service.GetBooking(context.Background(), "ABC123")

	assert.False(t, res.Success)
	assert.Equal(t, "Something went wrong", res.Error)
}
