package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Role
	}{
		{raw: "admin", want: RoleAdmin},
		{raw: "ADMIN", want: RoleAdmin},
		{raw: " team_lead ", want: RoleTeamLead},
		{raw: "member", want: RoleMember},
	}
	for _, tc := range tests {
		role, err := ParseRole(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, role, tc.raw)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
}

func TestParseTaskStatusAndPriority(t *testing.T) {
	t.Parallel()

	status, err := ParseTaskStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusInProgress, status)

	_, err = ParseTaskStatus("DONE")
	assert.Error(t, err)

	priority, err := ParseTaskPriority(" high ")
	require.NoError(t, err)
	assert.Equal(t, TaskPriorityHigh, priority)

	_, err = ParseTaskPriority("URGENT")
	assert.Error(t, err)
}
