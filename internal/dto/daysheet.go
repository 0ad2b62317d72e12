package dto

type CreateDaySheetRequest struct {
	Date     string   `json:"date"`
	DayNotes string   `json:"day_notes"`
	Owner    *UserRef `json:"owner"`
}

type UpdateDayNotesRequest struct {
	ID       uint64 `json:"id"        binding:"required"`
	DayNotes string `json:"day_notes"`
}

// DaySheetDto is the assembled day view. Timestamps, ratings and incidents are
// always arrays, never null.
type DaySheetDto struct {
	ID          uint64         `json:"id"`
	Date        string         `json:"date"`
	DayNotes    string         `json:"day_notes"`
	Confirmed   bool           `json:"confirmed"`
	Timestamps  []TimestampDto `json:"timestamps"`
	MoodRatings []RatingDto    `json:"moodRatings"`
	Incidents   []IncidentDto  `json:"incidents"`
	TimeSum     int64          `json:"timeSum"`
	Owner       *UserDto       `json:"owner"`
}

type TimestampDto struct {
	ID         uint64 `json:"id"`
	DaySheetID uint64 `json:"day_sheet_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// TimestampRequest is used for create (ID ignored) and update (DaySheetID ignored).
type TimestampRequest struct {
	ID         uint64 `json:"id"`
	DaySheetID uint64 `json:"day_sheet_id"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time"   binding:"required"`
}
