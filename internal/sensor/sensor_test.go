package sensor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.False(t, KindBMP180.HasHumidity())
	assert.True(t, KindBME280.HasHumidity())
	assert.Equal(t, "bme280", KindBME280.String())

	k, err := ParseKind(" BMP180 ")
	require.NoError(t, err)
	assert.Equal(t, KindBMP180, k)

	_, err = ParseKind("dht22")
	assert.Error(t, err)
}

func TestSimulatorWarmsUpThenJitters(t *testing.T) {
	s := NewSimulator(42)

	first, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, 8.0, first.Temperature)
	assert.Equal(t, 50.0, first.Humidity)

	prev := first.Temperature
	var r = first
	for i := 0; i < 200 && r.Temperature < 20; i++ {
		r, err = s.Read()
		require.NoError(t, err)
		assert.Greater(t, r.Temperature, prev, "temperature only rises while warming up")
		assert.LessOrEqual(t, r.Temperature-prev, 0.49+1e-9)
		prev = r.Temperature
	}
	require.GreaterOrEqual(t, r.Temperature, 20.0)

	for i := 0; i < 50; i++ {
		next, err := s.Read()
		require.NoError(t, err)
		assert.LessOrEqual(t, next.Temperature-prev, 0.40+1e-9)
		assert.GreaterOrEqual(t, next.Temperature-prev, -0.40-1e-9)
		prev = next.Temperature
	}
}

func TestSimulatorHumidityCycle(t *testing.T) {
	s := NewSimulator(1)
	var with []int
	for i := 1; i <= 42; i++ {
		r, err := s.Read()
		require.NoError(t, err)
		if r.HasHumidity {
			with = append(with, i)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31}, with)
}

func TestRemote(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	r := NewRemote(KindBMP180, 10*time.Second)
	r.now = func() time.Time { return now }

	_, err := r.Read()
	assert.True(t, errors.Is(err, ErrNoData))

	require.NoError(t, r.apply([]byte(`{"temperature": 23.5, "humidity": 41}`)))
	got, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 23.5, got.Temperature)
	assert.False(t, got.HasHumidity, "bmp180 has no humidity")

	now = now.Add(11 * time.Second)
	_, err = r.Read()
	assert.True(t, errors.Is(err, ErrStale))

	require.NoError(t, r.apply([]byte(`{"error": "Sensor read failed"}`)))
	_, err = r.Read()
	assert.EqualError(t, err, "probe: Sensor read failed")

	require.NoError(t, r.apply([]byte(`{"temperature": 24}`)))
	_, err = r.Read()
	assert.NoError(t, err)

	assert.Error(t, r.apply([]byte(`nope`)))
}

func TestRemoteHumidity(t *testing.T) {
	r := NewRemote(KindBME280, time.Minute)
	require.NoError(t, r.apply([]byte(`{"temperature": 21, "humidity": 44.5}`)))
	got, err := r.Read()
	require.NoError(t, err)
	assert.True(t, got.HasHumidity)
	assert.Equal(t, 44.5, got.Humidity)
}
