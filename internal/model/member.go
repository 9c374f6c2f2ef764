package model

import (
	"fmt"
	"time"
)

// Role is stored and embedded in tokens by its enum name.
type Role string

const (
	RoleGeneral Role = "GENERAL"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleGeneral:
		return RoleGeneral, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// Authorities returns the granted authority names for the role.
func (r Role) Authorities() []string {
	return []string{"ROLE_" + string(r)}
}

type Member struct {
	ID           int64     `json:"id"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasSession reports whether the member currently holds an active
// refresh token slot.
func (m Member) HasSession() bool {
	return m.RefreshToken != ""
}

// Identity is the request-scoped authenticated principal established by
// the authentication gate. Absence of an Identity on the context means
// the request is anonymous, not rejected.
type Identity struct {
	ID          int64    `json:"id"`
	Role        Role     `json:"role"`
	Name        string   `json:"name"`
	Authorities []string `json:"authorities"`
}

func NewIdentity(m Member) Identity {
	return Identity{
		ID:          m.ID,
		Role:        m.Role,
		Name:        m.Name,
		Authorities: m.Role.Authorities(),
	}
}

type MemberProfile struct {
	ID    int64  `json:"id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewMemberProfile(m Member) MemberProfile {
	return MemberProfile{ID: m.ID, Role: m.Role, Name: m.Name, Email: m.Email}
}
