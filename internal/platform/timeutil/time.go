// Package timeutil fixes the timestamp formats used in API payloads and logs.
package timeutil

import (
	"bytes"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, used in API payloads.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used in logs.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time marshals as "2024-01-15T10:30:00.000Z" regardless of location.
// Unmarshaling JSON null keeps the current value.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.UTC().Format(RFC3339Millis)), nil
}

// MarshalCBOR encodes the same string as MarshalJSON. Without it the promoted
// time.Time.MarshalBinary would produce an opaque byte string.
func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(t.UTC().Format(RFC3339Millis))
}

func (t *Time) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return t.UnmarshalText(bytes.Trim(data, `"`))
}

// UnmarshalText accepts any RFC 3339 variant.
func (t *Time) UnmarshalText(data []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
