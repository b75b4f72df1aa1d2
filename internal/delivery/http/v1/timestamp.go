package v1

import (
	"encoding/json"
	"fmt"
	"time"
)

const dueAtField = "due_at"

// localDateTimeLayout is an ISO 8601 date-time without a zone offset.
// Such values are read as UTC.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

type timestampError struct {
	field string
	raw   string
}

func (e *timestampError) Error() string {
	return fmt.Sprintf("%s: invalid timestamp %s", e.field, e.raw)
}

// dueAt accepts RFC 3339 timestamps and offset-less date-times.
type dueAt time.Time

func (d *dueAt) UnmarshalJSON(b []byte) error {
	var raw string
	err := json.Unmarshal(b, &raw)
	if err != nil {
		return &timestampError{field: dueAtField, raw: string(b)}
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		t, err = time.ParseInLocation(localDateTimeLayout, raw, time.UTC)
		if err != nil {
			return &timestampError{field: dueAtField, raw: string(b)}
		}
	}

	*d = dueAt(t)
	return nil
}

func (d *dueAt) Time() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}
