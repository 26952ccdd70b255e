package models

import "time"

// UserRole represents the role of an actor in the system
type UserRole string

const (
	RoleGuest     UserRole = "guest"
	RoleBuyer     UserRole = "buyer"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// RegisterStatus represents the verification state of an organizer registration
type RegisterStatus string

const (
	RegisterPending  RegisterStatus = "pending"
	RegisterApproved RegisterStatus = "approved"
	RegisterRejected RegisterStatus = "rejected"
)

// User represents a user profile as returned by the marketplace API
type User struct {
	UserID          int            `json:"user_id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Role            UserRole       `json:"role"`
	Image           string         `json:"image,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	RegisterStatus  RegisterStatus `json:"register_status,omitempty"`
	RegisterComment string         `json:"register_comment,omitempty"`
	CreatedAt       *time.Time     `json:"created_at,omitempty"`
}

// ValidRole reports whether the role belongs to the closed role set
func ValidRole(role UserRole) bool {
	switch role {
	case RoleGuest, RoleBuyer, RoleOrganizer, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsVerifiedOrganizer returns true if the user can have events listed
func (u *User) IsVerifiedOrganizer() bool {
	return u.Role == RoleOrganizer && u.RegisterStatus == RegisterApproved
}
