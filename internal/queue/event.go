package queue

import "time"

const NotificationQueue = "quickcourt.notifications"

const (
	EventOTPIssued        = "otp.issued"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Event is the wire format on the notification queue. Delivery (email,
// SMS) is an external consumer's job; the API only publishes.
type Event struct {
	Type string         `json:"type"`
	At   time.Time      `json:"at"`
	Data map[string]any `json:"data"`
}
