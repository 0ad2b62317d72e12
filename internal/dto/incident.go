package dto

type IncidentRequest struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	User        *UserRef `json:"user"`
}

type IncidentDto struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	User        *UserDto `json:"user,omitempty"`
}
