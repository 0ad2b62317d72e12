package domain

import (
	"fmt"
	"time"
)

// Interval is a time-of-day span, offsets measured from midnight.
type Interval struct {
	ID    uint64
	Start time.Duration
	End   time.Duration
}

// Duration is End-Start; reversed intervals count as zero.
func (iv Interval) Duration() time.Duration {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// ValidateInterval checks a candidate against the other intervals of the same day sheet.
// An existing interval with the candidate's id is its previous version and is skipped.
// Touching boundaries (a.End == b.Start) are allowed.
func ValidateInterval(candidate Interval, existing []Interval) error {
	if candidate.Start >= candidate.End {
		return ErrIntervalOrder
	}
	for _, e := range existing {
		if candidate.ID != 0 && e.ID == candidate.ID {
			continue
		}
		if overlaps(candidate, e) {
			return ErrIntervalOverlap
		}
	}
	return nil
}

func overlaps(c, e Interval) bool {
	switch {
	case c.Start > e.Start && c.Start < e.End:
		return true
	case c.End > e.Start && c.End < e.End:
		return true
	case c.Start == e.Start || c.End == e.End:
		return true
	case c.Start < e.Start && c.End > e.End:
		return true
	}
	return false
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, ErrInvalidTime
}

// FormatTimeOfDay renders an offset from midnight as HH:MM:SS.
func FormatTimeOfDay(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

// NormalizeTimeOfDay parses and re-renders s as HH:MM:SS.
func NormalizeTimeOfDay(s string) (string, error) {
	d, err := ParseTimeOfDay(s)
	if err != nil {
		return "", err
	}
	return FormatTimeOfDay(d), nil
}
