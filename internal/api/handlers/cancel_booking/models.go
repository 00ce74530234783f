package cancel_booking

// CancelBookingRequest тело необязательно
type CancelBookingRequest struct {
	Nota *string `json:"nota,omitempty"`
}
