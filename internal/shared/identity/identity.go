// Package identity carries the resolved caller through a request.
//
// Role is a closed set: the zero value is invalid and every other value is
// one of the three constants below. Principal is immutable once attached to a
// context; handlers read it with FromContext and never write it back.
package identity

import (
	"context"
	"errors"
	"strings"
)

type Role uint8

const (
	roleInvalid Role = iota
	RoleAdmin
	RoleUser
	RoleStoreOwner
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every valid role in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleStoreOwner}
}

func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	case "store_owner":
		return RoleStoreOwner, nil
	default:
		return roleInvalid, ErrUnknownRole
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	case RoleStoreOwner:
		return "store_owner"
	default:
		return ""
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleStoreOwner
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrUnknownRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}

type principalKey struct{}

// WithPrincipal returns a child context carrying a copy of p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the caller or nil for anonymous requests. The returned
// pointer refers to a fresh copy, so mutating it does not affect the context.
func FromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return nil
	}
	return &p
}
