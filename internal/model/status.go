package model

// PrinterStatus is the readiness of the printer derived from temperature.
type PrinterStatus int

const (
	StatusNotReady PrinterStatus = iota
	StatusReady
	StatusTooHot
)

// String returns the identifier used on the live feed ("NOT_READY", ...).
func (s PrinterStatus) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusTooHot:
		return "TOO_HOT"
	default:
		return "NOT_READY"
	}
}

// Label is the human readable form used in notifications.
func (s PrinterStatus) Label() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusTooHot:
		return "TOO HOT"
	default:
		return "NOT READY"
	}
}
