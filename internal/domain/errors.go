package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the service layer wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("upstream unavailable")
)

var (
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrDaySheetNotFound  = fmt.Errorf("day sheet %w", ErrNotFound)
	ErrTimestampNotFound = fmt.Errorf("timestamp %w", ErrNotFound)
	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrIncidentNotFound  = fmt.Errorf("incident %w", ErrNotFound)

	ErrDaySheetExists = fmt.Errorf("day sheet already exists for owner and date: %w", ErrConflict)
	ErrCategoryExists = fmt.Errorf("category name already taken: %w", ErrConflict)
	ErrRatingExists   = fmt.Errorf("rating already exists: %w", ErrConflict)

	ErrNotPrivileged     = fmt.Errorf("admin or social worker role required: %w", ErrForbidden)
	ErrAdminOnly         = fmt.Errorf("admin role required: %w", ErrForbidden)
	ErrDaySheetConfirmed = fmt.Errorf("day sheet is confirmed: %w", ErrForbidden)

	ErrIntervalOrder        = fmt.Errorf("start time must be before end time: %w", ErrInvalidInput)
	ErrIntervalOverlap      = fmt.Errorf("time interval overlaps an existing entry: %w", ErrInvalidInput)
	ErrInvalidCategoryOwner = fmt.Errorf("category owners must be participants: %w", ErrInvalidInput)
	ErrGlobalCategoryLink   = fmt.Errorf("global category cannot get owners: %w", ErrInvalidInput)
	ErrNotParticipant       = fmt.Errorf("user is not a participant: %w", ErrInvalidInput)
	ErrCategoryBounds       = fmt.Errorf("category minimum exceeds maximum: %w", ErrInvalidInput)
	ErrRatingOutOfRange     = fmt.Errorf("rating outside category bounds: %w", ErrInvalidInput)
	ErrInvalidDate          = fmt.Errorf("date must be YYYY-MM-DD: %w", ErrInvalidInput)
	ErrInvalidMonth         = fmt.Errorf("month must be YYYY-MM: %w", ErrInvalidInput)
	ErrInvalidTime          = fmt.Errorf("time must be HH:MM or HH:MM:SS: %w", ErrInvalidInput)
	ErrDaySheetReference    = fmt.Errorf("unknown day sheet: %w", ErrInvalidInput)
)

// RatingConflictError names the category whose rating already exists.
type RatingConflictError struct {
	CategoryID uint64
}

func (e *RatingConflictError) Error() string {
	return fmt.Sprintf("rating for category %d already exists", e.CategoryID)
}

func (e *RatingConflictError) Unwrap() error { return ErrRatingExists }
