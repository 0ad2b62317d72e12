package dto

import "compass-backend/internal/domain"

type CategoryRequest struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	MinimumValue   int       `json:"minimumValue"`
	MaximumValue   int       `json:"maximumValue"`
	CategoryOwners []UserRef `json:"categoryOwners"`
}

type CategoryDto struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	MinimumValue   int       `json:"minimumValue"`
	MaximumValue   int       `json:"maximumValue"`
	CategoryOwners []UserDto `json:"categoryOwners"`
}

// NewCategoryDto copies c without owners; CategoryOwners is an empty slice.
func NewCategoryDto(c domain.Category) CategoryDto {
	return CategoryDto{
		ID:             c.ID,
		Name:           c.Name,
		MinimumValue:   c.MinimumValue,
		MaximumValue:   c.MaximumValue,
		CategoryOwners: []UserDto{},
	}
}

type CreateRatingRequest struct {
	CategoryID uint64 `json:"categoryId"`
	Rating     int    `json:"rating"`
}

type RatingDto struct {
	Category   CategoryDto       `json:"category"`
	Rating     int               `json:"rating"`
	RatingRole domain.RatingRole `json:"ratingRole"`
}
