package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository/repositorytest"
)

func newUserService(t *testing.T) (*UserService, *repositorytest.UserRepo) {
	t.Helper()
	users := repositorytest.NewUserRepo()
	return NewUserService(testConfig(), users), users
}

func TestCreateUserHashesPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(t)

	user, err := svc.CreateUser(context.Background(), UserCreateInput{
		Username: "alice", Email: "alice@example.com", Password: "password", Role: domain.RoleMember,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password", user.PasswordHash)

	_, err = svc.CreateUser(context.Background(), UserCreateInput{
		Username: "clone", Email: "alice@example.com", Password: "other", Role: domain.RoleMember,
	})
	de := domainErr(t, err)
	assert.Equal(t, "DUPLICATE_EMAIL", de.Code)
}

func TestUpdateUserOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, users := newUserService(t)

	target, err := svc.CreateUser(ctx, UserCreateInput{
		Username: "alice", Email: "alice@example.com", Password: "password", Role: domain.RoleMember,
	})
	require.NoError(t, err)

	self := &auth.Principal{Email: target.Email, Role: target.Role, User: target}
	stranger := principalFor(t, users, "stranger@example.com", domain.RoleMember)
	admin := principalFor(t, users, "admin@example.com", domain.RoleAdmin)

	_, err = svc.UpdateUser(ctx, stranger, target.ID, UserUpdateInput{Username: "hax", Role: domain.RoleAdmin})
	de := domainErr(t, err)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)

	updated, err := svc.UpdateUser(ctx, self, target.ID, UserUpdateInput{Username: "alice2", Role: domain.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	updated, err = svc.UpdateUser(ctx, admin, target.ID, UserUpdateInput{Username: "alice3", Role: domain.RoleTeamLead})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeamLead, updated.Role)
}

func TestDeleteUserOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, users := newUserService(t)

	target, err := svc.CreateUser(ctx, UserCreateInput{
		Username: "alice", Email: "alice@example.com", Password: "password", Role: domain.RoleMember,
	})
	require.NoError(t, err)

	stranger := principalFor(t, users, "stranger@example.com", domain.RoleMember)
	err = svc.DeleteUser(ctx, stranger, target.ID)
	de := domainErr(t, err)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)

	self := &auth.Principal{Email: target.Email, Role: target.Role, User: target}
	require.NoError(t, svc.DeleteUser(ctx, self, target.ID))

	_, err = svc.GetUser(ctx, target.ID)
	de = domainErr(t, err)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}
