package auth

import (
	"context"
	"strings"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
	RoleOperator Role = "operator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSupplier, RoleOperator:
		return true
	}
	return false
}

// Identity is the verified caller as supplied by the identity service.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

type ContextKey string

const IdentityKey ContextKey = "identity"

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(Identity)
	return identity, ok
}

// NormalizeEmail is the single form emails are compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
