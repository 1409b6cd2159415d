package auth

import (
	"github.com/spec-kit/task-tracker/internal/domain"
)

// CanMutateTask decides whether the principal may update or delete a task
// owned by ownerEmail. First match wins: no principal denies, ADMIN permits
// unconditionally, otherwise ownership is required. Creates and reads are
// never routed through this check.
func CanMutateTask(principal *Principal, ownerEmail string) bool {
	if principal == nil {
		return false
	}
	if principal.Role == domain.RoleAdmin {
		return true
	}
	return principal.Email == ownerEmail
}

// CanMutateUser applies the same owner-or-admin rule to user records: a
// user may change or delete their own account, an ADMIN anyone's.
func CanMutateUser(principal *Principal, targetEmail string) bool {
	if principal == nil {
		return false
	}
	if principal.Role == domain.RoleAdmin {
		return true
	}
	return principal.Email == targetEmail
}
