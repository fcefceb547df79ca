package models

import (
	"fmt"
	"math"
	"time"

	z "github.com/Oudwins/zog"
)

// ValidationError names the first field of a submitted reading that failed
// validation. It is the caller's fault and carries no durable effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var readingSchema = z.Struct(z.Shape{
	"SensorID":  z.String().Min(1).Required(),
	"DeviceID":  z.String().Min(1).Required(),
	"Timestamp": z.Time().Required(),
	"TempValue": z.Float64().Required(),
})

// Schema keys carry the struct field names; errors reported to producers
// use the wire names instead.
var fieldWireNames = map[string]string{
	"SensorID":  "sensor_id",
	"DeviceID":  "device_id",
	"Timestamp": "timestamp",
	"TempValue": "temp_value",
}

// Producers send ISO-8601 timestamps, with or without a zone offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseReading validates a candidate reading decoded from either channel's
// JSON payload. The ID field is never taken from the input.
func ParseReading(data map[string]any) (*Reading, *ValidationError) {
	if ts, ok := data["timestamp"].(string); ok {
		if parsed, err := parseTimestamp(ts); err == nil {
			data["timestamp"] = parsed
		}
	}

	var r Reading
	if issues := readingSchema.Parse(data, &r); issues != nil {
		return nil, validationErrorFromIssues(issues)
	}
	r.ID = 0
	if math.IsNaN(r.TempValue) || math.IsInf(r.TempValue, 0) {
		return nil, &ValidationError{Field: "temp_value", Reason: "must be a finite number"}
	}
	return &r, nil
}

func validationErrorFromIssues(issues z.ZogIssueMap) *ValidationError {
	for field, list := range issues {
		if field == "$first" || len(list) == 0 {
			continue
		}
		if wire, ok := fieldWireNames[field]; ok {
			field = wire
		}
		return &ValidationError{Field: field, Reason: list[0].Message}
	}
	return &ValidationError{Field: "payload", Reason: "malformed reading"}
}
