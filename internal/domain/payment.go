package domain

import "time"

// PaymentState represents the state of a payment record
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentCompleted PaymentState = "completed"
	PaymentCancelled PaymentState = "cancelled"
	PaymentRefunded  PaymentState = "refunded"
)

// PaymentMethod names how a payment was made
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentGateway PaymentMethod = "gateway"
)

// Payment is the read-only projection of a payment record.
// Payment processing lives outside this service; the booking core only
// gates rating creation on the existence of a completed payment.
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Method        PaymentMethod
	State         PaymentState
	PaidAt        *time.Time
	CreatedAt     time.Time
}
