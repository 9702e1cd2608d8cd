package repository

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseTimestamp parses an RFC3339 column, naming the column in the error.
func parseTimestamp(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// parseDay parses a YYYY-MM-DD day column into midnight UTC.
func parseDay(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day: %w", err)
	}
	return t, nil
}
