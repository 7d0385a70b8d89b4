package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityFromRole(t *testing.T) {
	assert.Equal(t, CapabilityAdmin, CapabilityFromRole(RoleAdmin))
	assert.Equal(t, CapabilityStandard, CapabilityFromRole(RoleUser))
	assert.Equal(t, CapabilityStandard, CapabilityFromRole(""), "an empty role is a standard user")
	assert.Equal(t, CapabilityStandard, CapabilityFromRole("superuser"), "unknown roles never grant admin")
}

func TestIdentityIsAdmin(t *testing.T) {
	assert.True(t, (&Identity{Capability: CapabilityAdmin}).IsAdmin())
	assert.False(t, (&Identity{Capability: CapabilityStandard}).IsAdmin())
}
