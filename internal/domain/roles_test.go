package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"user":    RoleUser,
		"Admin":   RoleAdmin,
		" DRIVER": RoleDriver,
	} {
		got, ok := ParseRole(raw)
		assert.True(t, ok, "parse %q", raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "superuser", "root"} {
		_, ok := ParseRole(raw)
		assert.False(t, ok, "parse %q should fail", raw)
	}
}

func TestAuthorizeMatrix(t *testing.T) {
	cases := []struct {
		role     Role
		endpoint string
		allow    bool
	}{
		{RoleUser, EndpointFeedbackSubmit, true},
		{RoleDriver, EndpointFeedbackSubmit, true},
		{RoleAdmin, EndpointFeedbackSubmit, false},

		{RoleAdmin, EndpointFeedbackList, true},
		{RoleUser, EndpointFeedbackList, false},
		{RoleDriver, EndpointFeedbackList, false},

		{RoleDriver, EndpointBusUpdateSubmit, true},
		{RoleUser, EndpointBusUpdateSubmit, false},
		{RoleAdmin, EndpointBusUpdateSubmit, false},

		{RoleAdmin, EndpointBusStatusSet, true},
		{RoleUser, EndpointBusStatusSet, false},
		{RoleDriver, EndpointBusStatusSet, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allow, Authorize(tc.role, tc.endpoint),
			"role=%s endpoint=%s", tc.role, tc.endpoint)
	}
}

func TestAuthorizeUnknownEndpointOpenToValidRoles(t *testing.T) {
	assert.True(t, Authorize(RoleUser, "profile.read"))
	assert.True(t, Authorize(RoleDriver, "profile.read"))
	assert.True(t, Authorize(RoleAdmin, "profile.read"))
}

func TestAuthorizeInvalidRoleAlwaysDenied(t *testing.T) {
	assert.False(t, Authorize(Role("superuser"), EndpointFeedbackSubmit))
	assert.False(t, Authorize(Role(""), "profile.read"))
}
