package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTwelveHour parses a "h:mm am/pm" string into hours and minutes.
// Accepts "2:00 pm", "02:00PM", "11:45 pm" and similar shapes.
func ParseTwelveHour(value string) (hour, minute int, err error) {
	s := strings.ToLower(strings.TrimSpace(value))

	var meridiem string
	switch {
	case strings.HasSuffix(s, "am"):
		meridiem = "am"
	case strings.HasSuffix(s, "pm"):
		meridiem = "pm"
	default:
		return 0, 0, fmt.Errorf("time %q missing am/pm marker", value)
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, meridiem))

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time %q is not in h:mm format", value)
	}
	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("time %q has invalid hour: %w", value, err)
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("time %q has invalid minute: %w", value, err)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", value)
	}

	if meridiem == "pm" && hour != 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}

// ScheduleWindow is the derived schedule for one submission: UTC instants for
// storage plus 24-hour local strings for the external system.
type ScheduleWindow struct {
	StartUTC       time.Time
	EndUTC         time.Time
	Date           string // local date, "2006-01-02"
	LocalStartTime string // "15:04"
	LocalEndTime   string // "15:04", may roll past midnight (modulo 24)
}

// DeriveSchedule converts a date string, a 12-hour time string and a duration
// in minutes into the booking window, interpreted in the given timezone.
func DeriveSchedule(date, twelveHourTime string, durationMinutes int, timezone string) (*ScheduleWindow, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	hour, minute, err := ParseTwelveHour(twelveHourTime)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	// The external system wants a 24-hour local end-time string; a window
	// crossing midnight wraps modulo 24 rather than carrying the date.
	endHour := (hour + (minute+durationMinutes)/60) % 24
	endMinute := (minute + durationMinutes) % 60

	return &ScheduleWindow{
		StartUTC:       start.UTC(),
		EndUTC:         end.UTC(),
		Date:           date,
		LocalStartTime: fmt.Sprintf("%02d:%02d", hour, minute),
		LocalEndTime:   fmt.Sprintf("%02d:%02d", endHour, endMinute),
	}, nil
}
