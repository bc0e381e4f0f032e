package types

// UserType identifies which fleet a user belongs to.
type UserType string

func (t UserType) String() string {
	return string(t)
}

const (
	UserTypeBeeZero     UserType = "beezero"
	UserTypeOperador    UserType = "operador"
	UserTypeEcodelivery UserType = "ecodelivery"
)

// AllowedUserTypes is the allow-list applied to client-asserted user types.
var AllowedUserTypes = []UserType{UserTypeBeeZero, UserTypeOperador, UserTypeEcodelivery}

// ValidUserType reports whether t is one of the allowed user types.
func ValidUserType(t string) bool {
	for _, a := range AllowedUserTypes {
		if string(a) == t {
			return true
		}
	}
	return false
}

// ShiftState is the shift lifecycle state stored in the Estado column.
// Transition is strictly INICIADO -> CERRADO.
type ShiftState string

const (
	ShiftOpen   ShiftState = "INICIADO"
	ShiftClosed ShiftState = "CERRADO"
)

// Momento distinguishes the opening photo from the closing photo of a shift.
type Momento string

const (
	MomentoInicio Momento = "inicio"
	MomentoCierre Momento = "cierre"
)

// PhotoKind selects the BeeZero photo folder in the bucket.
type PhotoKind string

const (
	PhotoTablero PhotoKind = "tablero"
	PhotoDanos   PhotoKind = "danos"
)

// EventType identifies fleet events published to RabbitMQ and the live feed.
type EventType string

const (
	EventShiftStarted       EventType = "shift.started"
	EventShiftClosed        EventType = "shift.closed"
	EventDeliveryRegistered EventType = "delivery.registered"
	EventCarreraRegistered  EventType = "carrera.registered"
)

// SessionExpiredCode is the machine-readable code returned with 401 responses
// caused by an invalid or expired session.
const SessionExpiredCode = "SESSION_EXPIRED"
