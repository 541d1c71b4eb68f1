package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	admin := Actor{ID: "a1", Role: RoleAdmin}
	owner := Actor{ID: "u1", Role: RoleUser}
	other := Actor{ID: "u2", Role: RoleUser}

	assert.True(t, CanAccess(admin, "u1"), "admin can access anyone's records")
	assert.True(t, CanAccess(owner, "u1"), "owner can access their own records")
	assert.False(t, CanAccess(other, "u1"), "non-owner non-admin is denied")
}

func TestCanAdminister(t *testing.T) {
	assert.True(t, CanAdminister(Actor{ID: "a1", Role: RoleAdmin}))
	assert.False(t, CanAdminister(Actor{ID: "u1", Role: RoleUser}))
}
