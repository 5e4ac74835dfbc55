package core

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/atomic"
)

var (
	processStart = time.Now()
	clock        atomic.Pointer[func() time.Time]
)

// SetClock replaces the time source used for timestamps, label timers and
// TimeNow. Passing nil restores time.Now.
func SetClock(now func() time.Time) {
	if now == nil {
		clock.Store(nil)
		return
	}
	clock.Store(&now)
}

// Now returns the current time from the active time source.
func Now() time.Time {
	if p := clock.Load(); p != nil {
		return (*p)()
	}
	return time.Now()
}

// Uptime returns the time elapsed since the package was initialized.
func Uptime() time.Duration {
	return Now().Sub(processStart)
}

// FormatDuration renders d as "{sec}s {ms}ms", where ms carries the
// sub-second remainder with fractional precision.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	sec := int64(d / time.Second)
	ms := float64(d%time.Second) / float64(time.Millisecond)
	return fmt.Sprintf("%ds %sms", sec, strconv.FormatFloat(ms, 'f', -1, 64))
}

// Timestamp is the set of time representations captured when a log terminates.
type Timestamp struct {
	UnixMilli         int64  `json:"unixMilli" cbor:"unixMilli"`
	UTC               string `json:"utc" cbor:"utc"`
	UTCTimezoneOffset string `json:"utcTimezoneOffset" cbor:"utcTimezoneOffset"`
	ISO8601           string `json:"iso8601" cbor:"iso8601"`
}

// NewTimestamp builds a Timestamp from t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		UnixMilli:         t.UnixMilli(),
		UTC:               t.UTC().Format(http1123),
		UTCTimezoneOffset: t.Format("-07:00"),
		ISO8601:           t.Format(time.RFC3339),
	}
}

// http1123 is RFC1123 with the zone fixed to GMT.
const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"
