// Package access decides whether a caller may perform an operation on a
// resource. It is a pure function of the caller's identity, the operation,
// and the resource owner; it performs no I/O.
package access

import "github.com/qvo1811/restaurant-backend/internal/core/domain"

type Operation int

const (
	// OpReadOrder and OpCancelOrder are owner-or-admin operations.
	OpReadOrder Operation = iota
	OpCancelOrder
	// The remaining operations are admin-only.
	OpUpdateOrderStatus
	OpManageCatalog
	OpManageUsers
)

// Identity is the authenticated caller, supplied by the boundary layer.
type Identity struct {
	UserID int64
	Role   domain.Role
}

func (id Identity) IsAdmin() bool {
	return id.Role == domain.RoleAdmin
}

// Allowed reports whether the caller may perform op on a resource owned by
// ownerID. ownerID is ignored for admin-only operations.
func Allowed(caller Identity, op Operation, ownerID int64) bool {
	switch caller.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleUser:
		switch op {
		case OpReadOrder, OpCancelOrder:
			return caller.UserID == ownerID
		case OpUpdateOrderStatus, OpManageCatalog, OpManageUsers:
			return false
		}
	}
	return false
}
