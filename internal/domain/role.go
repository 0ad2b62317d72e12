package domain

import "strings"

// Role is the locally persisted authorization role of a user.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleSocialWorker Role = "SOCIAL_WORKER"
	RoleParticipant  Role = "PARTICIPANT"
	RoleNone         Role = "NO_ROLE"
)

// ParseRole accepts the enum names case-insensitively. Unknown input yields RoleNone, false.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSocialWorker:
		return RoleSocialWorker, true
	case RoleParticipant:
		return RoleParticipant, true
	case RoleNone:
		return RoleNone, true
	}
	return RoleNone, false
}

// IsPrivileged reports whether the role may act on other users' data.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSocialWorker
}

// RatingRole tags who submitted a rating.
type RatingRole string

const (
	RatingRoleSocialWorker RatingRole = "SOCIAL_WORKER"
	RatingRoleParticipant  RatingRole = "PARTICIPANT"
)

// RatingRoleFor derives the rating tag from the submitter's user role.
func RatingRoleFor(r Role) RatingRole {
	if r.IsPrivileged() {
		return RatingRoleSocialWorker
	}
	return RatingRoleParticipant
}

// Principal is the authenticated requester, resolved once per request.
type Principal struct {
	ID   string
	Role Role
}

// CanAccess is true for privileged principals and for the resource owner.
func (p Principal) CanAccess(ownerID string) bool {
	return p.Role.IsPrivileged() || (p.ID != "" && p.ID == ownerID)
}
