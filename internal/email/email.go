package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airbooking-admin/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send notifies affected passengers about an admin action. Stub transport,
// prints instead of delivering.
func (s *Sender) Send(ctx context.Context, event kafka.AdminEvent) error {
	switch event.Type {
	case "bookings_deleted":
		fmt.Printf("send email about %d deleted booking(s): %v\n", len(event.BookingIDs), event.BookingIDs)
	case "payment_processed":
		fmt.Printf("send payment receipt for booking %v\n", event.BookingIDs)
	default:
		fmt.Printf("send email about %s\n", event.Type)
	}
	return nil
}
