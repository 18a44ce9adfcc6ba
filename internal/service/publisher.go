package service

// Routing keys published on the venue exchange.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingClosed    = "booking.closed"
	TopicCheckInProcessed = "checkin.processed"
	TopicSurchargePending = "surcharge.pending"
	TopicSurchargePaid    = "surcharge.paid"
)

// EventPublisher is satisfied by *rabbitmq.Publisher. A nil publisher disables messaging.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CheckInMessage struct {
	BookingID string                 `json:"booking_id"`
	EventID   string                 `json:"event_id"`
	Results   []CheckInResultMessage `json:"results"`
}

type CheckInResultMessage struct {
	MemberID        int    `json:"member_id"`
	CheckInTime     string `json:"check_in_time"`
	Surcharge       int64  `json:"surcharge"`
	RequiresPayment bool   `json:"requires_payment"`
}

type SurchargeMessage struct {
	BookingID        string `json:"booking_id"`
	MemberID         int    `json:"member_id"`
	Amount           int64  `json:"amount"`
	PaymentReference string `json:"payment_reference,omitempty"`
}
