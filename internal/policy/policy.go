// Package policy decides whether a principal may perform an operation.
// Every protected request runs through Check; owner-scoped document reads
// additionally run through CheckOwner after the row is loaded. Public
// retrieval by public_id deliberately bypasses this package: its security
// rests on the unguessability of the identifier.
package policy

import "docvault/internal/model"

// Capability is a named authorization requirement attached to a route.
type Capability int

const (
	// Authenticated requires a verified session token.
	Authenticated Capability = iota
	// Admin requires a verified token whose claims carry is_admin.
	Admin
)

// Check evaluates a capability against verified claims. A nil claims
// pointer means no valid token was presented.
func Check(claims *model.TokenClaims, capability Capability) error {
	if claims == nil {
		return model.ErrUnauthorized
	}

	if capability == Admin && !claims.IsAdmin {
		return model.ErrForbidden
	}

	return nil
}

// CheckOwner authorizes access to a document owned by ownerID. A mismatch
// yields ErrDocumentNotFound rather than ErrForbidden so a non-owner
// cannot confirm that the document exists.
func CheckOwner(claims *model.TokenClaims, ownerID int64) error {
	if claims == nil {
		return model.ErrUnauthorized
	}

	if claims.UserID != ownerID {
		return model.ErrDocumentNotFound
	}

	return nil
}
