// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package policy implements the authorization rules of the platform as pure
predicate functions over (authentication state, role, HTTP method).

# Architecture

A [Rule] is evaluated at the request level before any object is fetched.
Routes compose rules at startup via the middleware layer. Mutations on owned
resources additionally run [CanModifyOwned] after the target row is loaded.

Every denial is explicit: a rule returns a descriptive 401 or 403 error,
never a silent no-op.
*/
package policy

import (
	"net/http"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/sec"
)

// Rule is a request-level authorization predicate.
//
// claims is nil for anonymous requests. A nil return allows the request.
type Rule func(claims *sec.AuthClaims, method string) error

// IsSafeMethod reports whether the HTTP verb is read-only
// (GET/HEAD/OPTIONS) and therefore exempt from write authorization.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// # Request-Level Rules

// AdminOnly allows only authenticated administrators (or staff accounts).
func AdminOnly(claims *sec.AuthClaims, method string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !claims.Role.IsAdmin() && !claims.IsStaff {
		return apperr.Forbidden("Administrator rights required")
	}
	return nil
}

// AdminOrReadOnly allows safe methods for everyone; unsafe methods fall
// through to [AdminOnly].
func AdminOrReadOnly(claims *sec.AuthClaims, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	return AdminOnly(claims, method)
}

// AuthenticatedOrReadOnly allows safe methods for everyone and unsafe
// methods for any authenticated user. Object-level ownership for mutations
// is enforced separately by [CanModifyOwned] once the target is loaded.
func AuthenticatedOrReadOnly(claims *sec.AuthClaims, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

// Authenticated allows any logged-in user regardless of method. It backs the
// self-service /users/me endpoint.
func Authenticated(claims *sec.AuthClaims, method string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

// # Object-Level Rules

// CanModifyOwned decides whether the caller may mutate an owned resource
// (review or comment) after it has been loaded.
//
// Admins and moderators may always mutate; otherwise the caller must be the
// resource's author. authorID is nil when the author account was removed,
// in which case only admins and moderators qualify.
func CanModifyOwned(claims *sec.AuthClaims, authorID *string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	role := claims.Role
	if role.IsAdmin() || role.IsModerator() || claims.IsStaff {
		return nil
	}

	if authorID != nil && *authorID == claims.UserID {
		return nil
	}

	return apperr.Forbidden("Only the author, a moderator, or an administrator may modify this resource")
}
