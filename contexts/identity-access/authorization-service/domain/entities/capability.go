package entities

import "storerating/internal/shared/identity"

// CapabilityKind enumerates every kind of access requirement a route can declare.
type CapabilityKind uint8

const (
	CapabilityPublic CapabilityKind = iota + 1
	CapabilityAuthenticated
	CapabilityRoleRestricted
	CapabilityOwnershipOrAdmin
	CapabilityOwnership
)

func (k CapabilityKind) String() string {
	switch k {
	case CapabilityPublic:
		return "public"
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilityRoleRestricted:
		return "role_restricted"
	case CapabilityOwnershipOrAdmin:
		return "ownership_or_admin"
	case CapabilityOwnership:
		return "ownership"
	default:
		return "unknown"
	}
}

// Capability is what a route or operation requires of its caller.
type Capability struct {
	Kind  CapabilityKind
	Roles []identity.Role
}

func Public() Capability {
	return Capability{Kind: CapabilityPublic}
}

func Authenticated() Capability {
	return Capability{Kind: CapabilityAuthenticated}
}

// RoleRestricted requires one of roles. An empty role list admits nobody.
func RoleRestricted(roles ...identity.Role) Capability {
	return Capability{Kind: CapabilityRoleRestricted, Roles: append([]identity.Role(nil), roles...)}
}

// OwnershipOrAdmin admits the resource owner and any admin.
func OwnershipOrAdmin() Capability {
	return Capability{Kind: CapabilityOwnershipOrAdmin}
}

// Ownership admits only the resource owner. Admins get no bypass.
func Ownership() Capability {
	return Capability{Kind: CapabilityOwnership}
}

// Resource identifies the record an ownership capability is checked against.
type Resource struct {
	Type    string
	ID      string
	OwnerID string
}
