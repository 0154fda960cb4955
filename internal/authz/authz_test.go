package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleRegular))
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole("Admin"))
}

func TestEntryScope(t *testing.T) {
	tests := []struct {
		role  string
		scope Scope
	}{
		{RoleRegular, ScopeOwn},
		{RoleManager, ScopeOwn},
		{RoleAdmin, ScopeAll},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.scope, EntryScope(tt.role))
		})
	}
}

func TestCanCreateEntryFor(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		role    string
		ownerID uuid.UUID
		allowed bool
	}{
		{"regular for self", RoleRegular, self, true},
		{"regular for other", RoleRegular, other, false},
		{"manager for self", RoleManager, self, true},
		{"manager for other", RoleManager, other, false},
		{"admin for self", RoleAdmin, self, true},
		{"admin for other", RoleAdmin, other, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanCreateEntryFor(tt.role, self, tt.ownerID))
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	assert.False(t, CanManageUsers(RoleRegular))
	assert.True(t, CanManageUsers(RoleManager))
	assert.True(t, CanManageUsers(RoleAdmin))
}

func TestCanDeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		actorRole  string
		targetRole string
		allowed    bool
	}{
		{"admin deletes regular", RoleAdmin, RoleRegular, true},
		{"admin deletes manager", RoleAdmin, RoleManager, true},
		{"admin deletes admin", RoleAdmin, RoleAdmin, true},
		{"manager deletes regular", RoleManager, RoleRegular, true},
		{"manager deletes manager", RoleManager, RoleManager, false},
		{"manager deletes admin", RoleManager, RoleAdmin, false},
		{"regular deletes regular", RoleRegular, RoleRegular, false},
		{"regular deletes admin", RoleRegular, RoleAdmin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanDeleteUser(tt.actorRole, tt.targetRole))
		})
	}
}
