package auth

import (
	"strings"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Identity is the resolved caller of an operation. A nil *Identity means
// the request is anonymous.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleRecruiter:
		return RoleRecruiter
	default:
		return RoleCandidate
	}
}

func (i *Identity) IsRecruiter() bool {
	return i != nil && i.Role == RoleRecruiter
}

// SameEmail compares addresses case-insensitively.
func (i *Identity) SameEmail(email string) bool {
	if i == nil || i.Email == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(i.Email), strings.TrimSpace(email))
}
