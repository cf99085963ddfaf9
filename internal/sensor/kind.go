// Package sensor provides the temperature sources the monitor samples.
package sensor

import (
	"fmt"
	"strings"
)

// Kind identifies the fitted sensor and what it can measure.
type Kind int

const (
	KindBMP180 Kind = iota
	KindBME280
	KindSimulated
)

func (k Kind) String() string {
	switch k {
	case KindBMP180:
		return "bmp180"
	case KindBME280:
		return "bme280"
	case KindSimulated:
		return "simulated"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// HasHumidity reports whether readings of this kind can carry humidity.
func (k Kind) HasHumidity() bool {
	return k == KindBME280 || k == KindSimulated
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bmp180":
		return KindBMP180, nil
	case "bme280":
		return KindBME280, nil
	case "simulated", "debug", "":
		return KindSimulated, nil
	}
	return 0, fmt.Errorf("unknown sensor kind %q", s)
}
