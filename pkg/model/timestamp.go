package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"
)

const jsonLayout = "2006-01-02T15:04:05.000Z07:00"

// layouts accepted when decoding, tried in order. The last one has no
// offset and is read in the local zone.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
}

// Timestamp decodes the time formats task services commonly emit:
// RFC 3339 strings, Jackson style "+0000" offsets and epoch milliseconds.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] != '"' {
		ms, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("timestamp %s: %w", b, err)
		}
		ts.Time = time.UnixMilli(int64(math.Round(ms)))
		return nil
	}

	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", b, err)
	}
	for i, layout := range layouts {
		var t time.Time
		if i == len(layouts)-1 {
			t, err = time.ParseInLocation(layout, s, time.Local)
		} else {
			t, err = time.Parse(layout, s)
		}
		if err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognized format", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(ts.UTC().Format(jsonLayout))), nil
}
