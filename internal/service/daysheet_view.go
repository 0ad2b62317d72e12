package service

import (
	"errors"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
)

// buildDaySheetView assembles the external view of d for a viewer with the
// given role. Participants only see participant ratings, privileged viewers
// see all, everyone else sees none.
func buildDaySheetView(d *domain.DaySheet, viewer domain.Role, owner *dto.UserDto) dto.DaySheetDto {
	view := dto.DaySheetDto{
		ID:          d.ID,
		Date:        d.Date,
		DayNotes:    d.DayNotes,
		Confirmed:   d.Confirmed,
		Timestamps:  make([]dto.TimestampDto, 0, len(d.Timestamps)),
		MoodRatings: make([]dto.RatingDto, 0, len(d.Ratings)),
		Incidents:   make([]dto.IncidentDto, 0, len(d.Incidents)),
		Owner:       owner,
	}
	for _, t := range d.Timestamps {
		view.Timestamps = append(view.Timestamps, timestampDto(t))
		if iv, ok := t.Interval(); ok {
			view.TimeSum += iv.Duration().Milliseconds()
		}
	}
	for _, r := range d.Ratings {
		if visibleRating(r.RatingRole, viewer) {
			view.MoodRatings = append(view.MoodRatings, ratingDto(r))
		}
	}
	for _, i := range d.Incidents {
		view.Incidents = append(view.Incidents, dto.IncidentDto{
			ID:          i.ID,
			Title:       i.Title,
			Description: i.Description,
			Date:        d.Date,
		})
	}
	return view
}

func visibleRating(tag domain.RatingRole, viewer domain.Role) bool {
	switch {
	case viewer.IsPrivileged():
		return true
	case viewer == domain.RoleParticipant:
		return tag == domain.RatingRoleParticipant
	}
	return false
}

func timestampDto(t domain.Timestamp) dto.TimestampDto {
	return dto.TimestampDto{ID: t.ID, DaySheetID: t.DaySheetID, StartTime: t.StartTime, EndTime: t.EndTime}
}

func ratingDto(r domain.Rating) dto.RatingDto {
	out := dto.RatingDto{Rating: r.Value, RatingRole: r.RatingRole}
	if r.Category != nil {
		out.Category = dto.NewCategoryDto(*r.Category)
	} else {
		out.Category = dto.CategoryDto{ID: r.CategoryID, CategoryOwners: []dto.UserDto{}}
	}
	return out
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }

func isConflict(err error) bool { return errors.Is(err, domain.ErrConflict) }
