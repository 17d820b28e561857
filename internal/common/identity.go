package common

import (
	"context"

	"tyremart/internal/models"
)

// CallerRole distinguishes the variants of CallerIdentity.
type CallerRole string

const (
	CallerAnonymous   CallerRole = "anonymous"
	CallerDistributor CallerRole = "distributor"
	CallerSubUser     CallerRole = "subuser"
)

// CallerIdentity is a tagged union over the three caller kinds. Exactly one of
// Distributor/SubUser is set for the matching role; both are nil for anonymous.
type CallerIdentity struct {
	Role        CallerRole
	Distributor *models.Distributor
	SubUser     *models.SubUser
}

func AnonymousIdentity() *CallerIdentity {
	return &CallerIdentity{Role: CallerAnonymous}
}

func DistributorIdentity(d *models.Distributor) *CallerIdentity {
	return &CallerIdentity{Role: CallerDistributor, Distributor: d}
}

func SubUserIdentity(s *models.SubUser) *CallerIdentity {
	return &CallerIdentity{Role: CallerSubUser, SubUser: s}
}

func (i *CallerIdentity) IsAnonymous() bool {
	return i == nil || i.Role == CallerAnonymous
}

func (i *CallerIdentity) IsDistributor() bool {
	return i != nil && i.Role == CallerDistributor
}

func (i *CallerIdentity) IsSubUser() bool {
	return i != nil && i.Role == CallerSubUser
}

type contextKey string

const identityKey contextKey = "caller_identity"

// WithIdentity stores the resolved caller identity on the request context.
func WithIdentity(ctx context.Context, identity *CallerIdentity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the caller identity from the request context.
// Requests that never went through the authentication middleware resolve to
// anonymous.
func IdentityFromContext(ctx context.Context) *CallerIdentity {
	if identity, ok := ctx.Value(identityKey).(*CallerIdentity); ok && identity != nil {
		return identity
	}
	return AnonymousIdentity()
}
