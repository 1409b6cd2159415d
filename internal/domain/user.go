package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates authority levels for registered users.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleTeamLead Role = "TEAM_LEAD"
	RoleMember   Role = "MEMBER"
)

// ParseRole normalizes a caller-supplied role string.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleTeamLead:
		return RoleTeamLead, nil
	case RoleMember:
		return RoleMember, nil
	}
	return "", fmt.Errorf("unknown role: %q", value)
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
