package config

import (
	"time"

	"github.com/hako/durafmt"
)

// Duration is a wrapper for time.Duration to support yaml unmarshalling
type Duration time.Duration

// ToDuration converts Duration to time.Duration
func (c Duration) ToDuration() time.Duration {
	return time.Duration(c)
}

// IsAboveZero returns true if duration is strictly greater than zero.
func (c Duration) IsAboveZero() bool {
	return c.ToDuration() > 0
}

// String implements `fmt.Stringer`
func (c Duration) String() string {
	return durafmt.Parse(c.ToDuration()).String()
}

// MarshalText implements `encoding.TextMarshaler`.
func (c Duration) MarshalText() ([]byte, error) {
	return []byte(c.ToDuration().String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (c *Duration) UnmarshalText(data []byte) error {
	duration, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}

	*c = Duration(duration)

	return nil
}
