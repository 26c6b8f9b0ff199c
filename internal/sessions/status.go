package sessions

// PaymentStatus tracks where a session's money is.
type PaymentStatus string

const (
	// PaymentStatusPreAuthorized means the entry hold was approved; the final
	// charge happens at exit.
	PaymentStatusPreAuthorized PaymentStatus = "PRE_AUTHORIZED"
	// PaymentStatusPaid means the exit charge went through.
	PaymentStatusPaid PaymentStatus = "PAID"
	// PaymentStatusFailed means a charge was attempted and declined.
	PaymentStatusFailed PaymentStatus = "FAILED"
	// PaymentStatusHotelPass means a hotel pass covers the stay, no charge.
	PaymentStatusHotelPass PaymentStatus = "HOTEL_PASS"
)

// IsTerminal reports whether no further payment transitions are expected.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusHotelPass:
		return true
	default:
		return false
	}
}

func IsValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPreAuthorized, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusHotelPass:
		return true
	default:
		return false
	}
}
