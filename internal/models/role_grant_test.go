package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleSatisfies(t *testing.T) {
	cases := []struct {
		role     Role
		required string
		want     bool
	}{
		{"Admin_Principal", "admin", true},
		{"admin_vp", "admin", true},
		{"co-admin-assistant", "admin", true},
		{"teacher", "TEACHER", true},
		{"homeroom teacher", "teacher", true},
		{"teacher", "admin", false},
		{"principal", "teacher", false},
		{"admin", "", false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.role.Satisfies(tc.required), "role %q vs %q", tc.role, tc.required)
	}
}

func TestRoleGrantAppliesTo(t *testing.T) {
	school := uint(3)
	other := uint(4)

	grant := RoleGrant{Role: "teacher", SchoolID: &school, Status: StatusActive}
	require.True(t, grant.AppliesTo(&school))
	require.False(t, grant.AppliesTo(&other))
	require.True(t, grant.AppliesTo(nil), "nil scope only constrains on activity")

	unscoped := RoleGrant{Role: "admin", Status: StatusActive}
	require.True(t, unscoped.AppliesTo(&school), "unscoped grant applies everywhere")

	inactive := RoleGrant{Role: "teacher", SchoolID: &school, Status: StatusInactive}
	require.False(t, inactive.AppliesTo(&school))
}
