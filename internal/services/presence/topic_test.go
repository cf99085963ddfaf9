package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"mqtt/sensor", "mqtt/sensor", true},
		{"mqtt/sensor", "mqtt/sensors", false},
		{"mqtt/+", "mqtt/sensor", true},
		{"+/sensor", "mqtt/sensor", true},
		{"+/+", "mqtt/sensor", true},
		{"+", "mqtt/sensor", false},
		{"mqtt/#", "mqtt/sensor", true},
		{"mqtt/#", "mqtt", true},
		{"#", "mqtt/sensor", true},
		{"mqtt/sensor/#", "mqtt/sensor", true},
		{"mqtt/sensor/+", "mqtt/sensor", false},
		{"mqtt/#/x", "mqtt/sensor", false},
		{"other/#", "mqtt/sensor", false},
		{"mqtt/sensor/extra", "mqtt/sensor", false},
		{"#", "$SYS/broker", false},
		{"+/broker", "$SYS/broker", false},
		{"$SYS/#", "$SYS/broker", true},
		{"$share/web/mqtt/sensor", "mqtt/sensor", true},
		{"$share/web/mqtt/#", "mqtt/sensor", true},
		{"$share/web", "mqtt/sensor", false},
		{"", "mqtt/sensor", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.filter, tt.topic), "%s vs %s", tt.filter, tt.topic)
	}
}
