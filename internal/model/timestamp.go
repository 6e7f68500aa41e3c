package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout renders times as "2006-01-02 15:04:05 pm" in DisplayZone.
const TimestampLayout = "2006-01-02 15:04:05 pm"

// DisplayZone is the fixed zone all timestamps are rendered in (IST, no DST).
var DisplayZone = time.FixedZone("IST", 5*60*60+30*60)

// Timestamp is stored as a UTC DATETIME and serialized as a display string.
type Timestamp struct{ time.Time }

// Now returns the current time truncated to the millisecond precision of
// DATETIME(3) columns.
func Now() Timestamp { return Timestamp{time.Now().UTC().Truncate(time.Millisecond)} }

// String formats the timestamp in DisplayZone; the zero value is "".
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.In(DisplayZone).Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// Scan implements sql.Scanner; the driver delivers time.Time with parseTime=true.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("timestamp: cannot scan %T", src)
	}
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) { return t.UTC(), nil }
