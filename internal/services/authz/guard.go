// Package authz decides whether a principal may perform an operation
// on a resource. It is pure and stateless: handlers evaluate it before
// calling into any service, instead of scattering role checks across
// endpoints.
package authz

import "walletcore/internal/models"

// Principal is the authenticated caller, established upstream.
type Principal struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the principal holds the administrador role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdministrador
}

// Operation kinds gated by the guard.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Decision is the guard's typed verdict. A Deny is always reported to
// the caller, never downgraded to an empty result.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Authorize gates an operation against the resource owned by
// resourceOwnerID. Administrators may do anything; standard users may
// only read and create against their own resources, and may never
// update or delete records.
func Authorize(p Principal, op Operation, resourceOwnerID uint) Decision {
	if p.IsAdmin() {
		return Allow
	}
	switch op {
	case OpRead, OpCreate:
		if p.UserID == resourceOwnerID {
			return Allow
		}
	}
	return Deny
}
