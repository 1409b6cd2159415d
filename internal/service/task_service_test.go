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

func newTaskService(t *testing.T) (*TaskService, *repositorytest.UserRepo) {
	t.Helper()
	users := repositorytest.NewUserRepo()
	tasks := repositorytest.NewTaskRepo()
	svc := NewTaskService(TaskDependencies{TaskRepo: tasks, UserRepo: users})
	return svc, users
}

func principalFor(t *testing.T, users *repositorytest.UserRepo, email string, role domain.Role) *auth.Principal {
	t.Helper()
	user := &domain.User{Username: "u-" + email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, users.Create(context.Background(), user))
	return &auth.Principal{Email: user.Email, Role: user.Role, User: user}
}

func TestCreateTaskAssignsOwner(t *testing.T) {
	t.Parallel()

	svc, users := newTaskService(t)
	owner := principalFor(t, users, "owner@example.com", domain.RoleMember)

	task, err := svc.CreateTask(context.Background(), owner, TaskCreateInput{Title: "My Task", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", task.OwnerEmail)
	assert.Equal(t, owner.User.ID, task.OwnerID)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
}

func TestCreateTaskRequiresPrincipal(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	_, err := svc.CreateTask(context.Background(), nil, TaskCreateInput{Title: "x"})
	de := domainErr(t, err)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}

func TestUpdateTaskOwnershipRule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, users := newTaskService(t)
	owner := principalFor(t, users, "owner@example.com", domain.RoleMember)
	other := principalFor(t, users, "other@example.com", domain.RoleMember)
	lead := principalFor(t, users, "lead@example.com", domain.RoleTeamLead)
	admin := principalFor(t, users, "admin@example.com", domain.RoleAdmin)

	task, err := svc.CreateTask(ctx, owner, TaskCreateInput{Title: "My Task"})
	require.NoError(t, err)

	update := TaskUpdateInput{Title: "Updated", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityLow}

	// non-owner member and team lead are both rejected
	for _, principal := range []*auth.Principal{other, lead} {
		_, err := svc.UpdateTask(ctx, principal, task.ID, update)
		de := domainErr(t, err)
		assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	}

	// owner succeeds
	updated, err := svc.UpdateTask(ctx, owner, task.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)

	// admin succeeds on someone else's task
	updated, err = svc.UpdateTask(ctx, admin, task.ID, TaskUpdateInput{Title: "Admin Updated"})
	require.NoError(t, err)
	assert.Equal(t, "Admin Updated", updated.Title)
}

func TestUpdateTaskReassignsOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, users := newTaskService(t)
	owner := principalFor(t, users, "owner@example.com", domain.RoleMember)
	next := principalFor(t, users, "next@example.com", domain.RoleMember)

	task, err := svc.CreateTask(ctx, owner, TaskCreateInput{Title: "My Task"})
	require.NoError(t, err)

	nextEmail := next.Email
	updated, err := svc.UpdateTask(ctx, owner, task.ID, TaskUpdateInput{Title: "My Task", OwnerEmail: &nextEmail})
	require.NoError(t, err)
	assert.Equal(t, next.User.ID, updated.OwnerID)
	assert.Equal(t, "next@example.com", updated.OwnerEmail)

	// unknown target owner is a 404
	ghost := "ghost@example.com"
	_, err = svc.UpdateTask(ctx, next, task.ID, TaskUpdateInput{Title: "My Task", OwnerEmail: &ghost})
	de := domainErr(t, err)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestDeleteTaskOwnershipRule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, users := newTaskService(t)
	owner := principalFor(t, users, "owner@example.com", domain.RoleMember)
	other := principalFor(t, users, "other@example.com", domain.RoleMember)
	admin := principalFor(t, users, "admin@example.com", domain.RoleAdmin)

	first, err := svc.CreateTask(ctx, owner, TaskCreateInput{Title: "first"})
	require.NoError(t, err)
	second, err := svc.CreateTask(ctx, owner, TaskCreateInput{Title: "second"})
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, other, first.ID)
	de := domainErr(t, err)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)

	require.NoError(t, svc.DeleteTask(ctx, owner, first.ID))
	require.NoError(t, svc.DeleteTask(ctx, admin, second.ID))

	_, err = svc.GetTask(ctx, first.ID)
	de = domainErr(t, err)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestGetTaskNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	_, err := svc.GetTask(context.Background(), "missing-id")
	de := domainErr(t, err)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}
