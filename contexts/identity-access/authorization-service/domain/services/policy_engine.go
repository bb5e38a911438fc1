package services

import (
	"storerating/contexts/identity-access/authorization-service/domain/entities"
	"storerating/internal/shared/identity"
)

// Evaluate decides whether principal satisfies capability. It is pure: no
// I/O and no clock. A nil principal is an anonymous caller. Unknown
// capability kinds deny.
func Evaluate(principal *identity.Principal, capability entities.Capability, resource *entities.Resource) entities.Decision {
	switch capability.Kind {
	case entities.CapabilityPublic:
		return entities.Allow()
	case entities.CapabilityAuthenticated:
		if principal == nil {
			return entities.Deny(entities.ReasonUnauthenticated)
		}
		return entities.Allow()
	case entities.CapabilityRoleRestricted:
		if principal == nil {
			return entities.Deny(entities.ReasonUnauthenticated)
		}
		for _, role := range capability.Roles {
			if principal.Role.Valid() && principal.Role == role {
				return entities.Allow()
			}
		}
		return entities.Deny(entities.ReasonForbiddenRole)
	case entities.CapabilityOwnershipOrAdmin:
		if principal == nil {
			return entities.Deny(entities.ReasonUnauthenticated)
		}
		if principal.Is(identity.RoleAdmin) {
			return entities.Allow()
		}
		return ownerDecision(principal, resource)
	case entities.CapabilityOwnership:
		if principal == nil {
			return entities.Deny(entities.ReasonUnauthenticated)
		}
		return ownerDecision(principal, resource)
	default:
		return entities.Deny(entities.ReasonForbiddenRole)
	}
}

func ownerDecision(principal *identity.Principal, resource *entities.Resource) entities.Decision {
	if resource == nil || resource.OwnerID == "" || principal.UserID == "" {
		return entities.Deny(entities.ReasonNotOwner)
	}
	if resource.OwnerID != principal.UserID {
		return entities.Deny(entities.ReasonNotOwner)
	}
	return entities.Allow()
}
