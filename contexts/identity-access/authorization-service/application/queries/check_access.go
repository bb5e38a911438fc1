package queries

import (
	"context"
	"log/slog"

	application "storerating/contexts/identity-access/authorization-service/application"
	"storerating/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "storerating/contexts/identity-access/authorization-service/domain/errors"
	"storerating/contexts/identity-access/authorization-service/domain/services"
	"storerating/internal/shared/identity"
)

// CheckAccessQuery names what is required and, for ownership checks, of which record.
type CheckAccessQuery struct {
	Capability entities.Capability
	Resource   *entities.Resource
}

// CheckAccessUseCase evaluates capabilities against the principal carried by ctx.
type CheckAccessUseCase struct {
	Logger *slog.Logger
}

// Decide returns the raw decision without converting it to an error.
func (u CheckAccessUseCase) Decide(ctx context.Context, query CheckAccessQuery) entities.Decision {
	principal := identity.FromContext(ctx)
	decision := services.Evaluate(principal, query.Capability, query.Resource)
	if !decision.Allowed {
		u.logDenied(principal, query, decision)
	}
	return decision
}

// Execute returns nil when access is granted and a domain error otherwise.
func (u CheckAccessUseCase) Execute(ctx context.Context, query CheckAccessQuery) error {
	return DecisionError(u.Decide(ctx, query))
}

func (u CheckAccessUseCase) RequireAuthenticated(ctx context.Context) error {
	return u.Execute(ctx, CheckAccessQuery{Capability: entities.Authenticated()})
}

func (u CheckAccessUseCase) RequireRole(ctx context.Context, roles ...identity.Role) error {
	return u.Execute(ctx, CheckAccessQuery{Capability: entities.RoleRestricted(roles...)})
}

// RequireOwner admits only the owner of the named record. Callers look the
// record up first and return not found before asking.
func (u CheckAccessUseCase) RequireOwner(ctx context.Context, resourceType string, resourceID string, ownerID string) error {
	return u.Execute(ctx, CheckAccessQuery{
		Capability: entities.Ownership(),
		Resource:   &entities.Resource{Type: resourceType, ID: resourceID, OwnerID: ownerID},
	})
}

func (u CheckAccessUseCase) RequireOwnerOrAdmin(ctx context.Context, resourceType string, resourceID string, ownerID string) error {
	return u.Execute(ctx, CheckAccessQuery{
		Capability: entities.OwnershipOrAdmin(),
		Resource:   &entities.Resource{Type: resourceType, ID: resourceID, OwnerID: ownerID},
	})
}

// DecisionError maps a decision onto the module's sentinel errors.
func DecisionError(decision entities.Decision) error {
	if decision.Allowed {
		return nil
	}
	switch decision.Reason {
	case entities.ReasonUnauthenticated:
		return domainerrors.ErrUnauthenticated
	case entities.ReasonNotOwner:
		return domainerrors.ErrNotOwner
	default:
		return domainerrors.ErrForbiddenRole
	}
}

func (u CheckAccessUseCase) logDenied(principal *identity.Principal, query CheckAccessQuery, decision entities.Decision) {
	attrs := []any{
		"event", "authz_access_denied",
		"module", application.ModuleName(),
		"layer", "application",
		"capability", query.Capability.Kind.String(),
		"reason", string(decision.Reason),
	}
	if principal != nil {
		attrs = append(attrs, "user_id", principal.UserID, "role", principal.Role.String())
	}
	if query.Resource != nil {
		attrs = append(attrs, "resource_type", query.Resource.Type, "resource_id", query.Resource.ID)
	}
	application.ResolveLogger(u.Logger).Debug("access denied", attrs...)
}
