package email

import (
	"context"
	"fmt"

	"github.com/ozdmr89/aerodesk/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify passenger %d: %s booking %s, flight %d seat %q\n",
		event.PassengerID, event.Type, event.Reference, event.FlightID, event.SeatNumber)
	return nil
}
