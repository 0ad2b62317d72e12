package dto

import "compass-backend/internal/domain"

// UserRef identifies a user inside another request body.
type UserRef struct {
	UserID string `json:"user_id"`
}

// UserDto merges the identity-provider profile with the local role.
type UserDto struct {
	UserID     string      `json:"user_id"`
	Email      string      `json:"email"`
	GivenName  string      `json:"given_name"`
	FamilyName string      `json:"family_name"`
	Role       domain.Role `json:"role"`
	Deleted    bool        `json:"deleted"`
}

func NewUserDto(p domain.Profile, role domain.Role) UserDto {
	return UserDto{
		UserID:     p.UserID,
		Email:      p.Email,
		GivenName:  p.GivenName,
		FamilyName: p.FamilyName,
		Role:       role,
		Deleted:    p.Blocked,
	}
}

type CreateUserRequest struct {
	Email      string      `json:"email"       binding:"required,email"`
	GivenName  string      `json:"given_name"  binding:"required"`
	FamilyName string      `json:"family_name" binding:"required"`
	Password   string      `json:"password"    binding:"required"`
	Connection string      `json:"connection"`
	Role       domain.Role `json:"role"`
}

type UpdateUserRequest struct {
	Email      string      `json:"email"`
	GivenName  string      `json:"given_name"`
	FamilyName string      `json:"family_name"`
	Role       domain.Role `json:"role"`
	Blocked    *bool       `json:"blocked"`
}
