package handler

import "compass-backend/internal/domain"

// URI inputs shared by several resources.
type idURI struct {
	ID uint64 `uri:"id" binding:"required,min=1"`
}

type dateURI struct {
	Date string `uri:"date" binding:"required"`
}

type monthURI struct {
	Month string `uri:"month" binding:"required"`
}

type userURI struct {
	UserID string `uri:"userId" binding:"required"`
}

type userDateURI struct {
	UserID string `uri:"userId" binding:"required"`
	Date   string `uri:"date"   binding:"required"`
}

type userMonthURI struct {
	UserID string `uri:"userId" binding:"required"`
	Month  string `uri:"month"  binding:"required"`
}

type userIDURI struct {
	ID string `uri:"id" binding:"required"`
}

// Empty is the body of successful deletes.
type Empty struct{}

var privileged = []domain.Role{domain.RoleAdmin, domain.RoleSocialWorker}
