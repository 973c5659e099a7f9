package handlers

import (
	"errors"
	"time"
)

// parseTimeRange parses RFC 3339 "from"/"to" query values. Missing bounds
// default to the surrounding 90 days.
func parseTimeRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 60)

	var err error
	if fromStr != "" {
		if from, err = time.Parse(time.RFC3339, fromStr); err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' timestamp, expected RFC 3339")
		}
	}
	if toStr != "" {
		if to, err = time.Parse(time.RFC3339, toStr); err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' timestamp, expected RFC 3339")
		}
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("'to' must be after 'from'")
	}
	return from, to, nil
}
