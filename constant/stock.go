package constant

type MovementType string

const (
	MovementTypeIn  MovementType = "in"
	MovementTypeOut MovementType = "out"
)

type MovementSource string

const (
	MovementSourceOrder      MovementSource = "order"
	MovementSourceAdjustment MovementSource = "adjustment"
)

type ReservationStatus string

const (
	ReservationStatusActive   ReservationStatus = "active"
	ReservationStatusExpired  ReservationStatus = "expired"
	ReservationStatusReleased ReservationStatus = "released"
)

// DefaultReservationTTLMinutes is used when the caller does not supply a TTL.
const DefaultReservationTTLMinutes = 30
