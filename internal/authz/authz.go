// Package authz is the single place role and ownership decisions are made.
// Every function is pure: handlers and services pass the actor's CURRENT role
// (loaded from storage, never from token claims) and get an allow/deny or a
// query scope back. No endpoint re-derives role checks on its own.
package authz

import "github.com/google/uuid"

// Roles form a flat set with ordered privilege: regular < manager < admin.
const (
	RoleRegular = "regular"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// ValidRole reports whether r is one of the allowed roles.
func ValidRole(r string) bool {
	return r == RoleRegular || r == RoleManager || r == RoleAdmin
}

// Scope is the subset of entries a role may see.
type Scope int

const (
	// ScopeOwn restricts queries to rows owned by the actor.
	ScopeOwn Scope = iota
	// ScopeAll places no ownership restriction on queries.
	ScopeAll
)

// EntryScope returns the visibility scope for entry queries. Managers see
// entries like regular users do: own-only. Only admins see everything.
func EntryScope(role string) Scope {
	if role == RoleAdmin {
		return ScopeAll
	}
	return ScopeOwn
}

// CanCreateEntryFor reports whether the actor may create an entry owned by
// ownerID. Admins may create for anyone, everyone else only for themselves.
func CanCreateEntryFor(role string, actorID, ownerID uuid.UUID) bool {
	if role == RoleAdmin {
		return true
	}
	return actorID == ownerID
}

// CanManageUsers reports whether the actor may create, read, list or update
// user records.
func CanManageUsers(role string) bool {
	return role == RoleManager || role == RoleAdmin
}

// CanDeleteUser reports whether the actor may delete a user with the given
// role. Admins delete anyone; managers delete regular users only.
func CanDeleteUser(actorRole, targetRole string) bool {
	switch actorRole {
	case RoleAdmin:
		return true
	case RoleManager:
		return targetRole == RoleRegular
	default:
		return false
	}
}
