package gateways

import "context"

// ExternalIdentity is the identity asserted by a federated provider
type ExternalIdentity struct {
	Email         string
	Name          string
	EmailVerified bool
}

// IdentityProvider exchanges an OAuth authorization code for a
// verified external identity.
type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}
