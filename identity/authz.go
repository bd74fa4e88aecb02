package identity

import "crypto/subtle"

// Authorizer decides whether a principal is the privileged system identity.
//
// The state object never embeds a raw identity comparison; callers inject an
// Authorizer so the capability check can be swapped out in tests.
type Authorizer interface {
	IsSystem(p Principal) bool
}

// StaticSystem authorizes exactly one fixed principal.
type StaticSystem struct {
	System Principal
}

func (s StaticSystem) IsSystem(p Principal) bool {
	if s.System == "" || p == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.System), []byte(p)) == 1
}

// FuncAuthorizer adapts a function into an Authorizer.
type FuncAuthorizer func(p Principal) bool

func (f FuncAuthorizer) IsSystem(p Principal) bool {
	return f(p)
}
