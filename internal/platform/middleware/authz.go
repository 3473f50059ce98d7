// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Recenzo API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This file covers AuthN (bearer
// token verification) and AuthZ (composition of policy rules per route).
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/ctxutil"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// service implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	// VerifyToken checks the bearer string and returns the account ID it is bound to.
	VerifyToken(tokenStr string) (string, error)
}

// IdentityLoader resolves a verified account ID into the live [*sec.AuthClaims].
//
// The role is deliberately NOT read from the token: loading it from storage
// on every request keeps promotions and demotions effective immediately.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Resolve the current account state via [IdentityLoader].
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, identities IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			userID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Identity Resolution ────────────────────────────────────────
			// A valid token for a deleted or deactivated account is worthless.
			// A storage failure is not the caller's fault and must not read
			// as a revoked account.
			claims, err := identities.LoadIdentity(request.Context(), userID)
			if err != nil {
				if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus < http.StatusInternalServerError {
					respond.Error(writer, request, apperr.Unauthorized("Account no longer active"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Require composes one or more [policy.Rule] predicates into a route guard.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Rules run in order;
// the first denial aborts the request with the rule's 401/403 error.
//
//	router.With(middleware.Require(policy.AdminOrReadOnly)).Get("/", handler.list)
func Require(rules ...policy.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			for _, rule := range rules {
				if err := rule(claims, request.Method); err != nil {
					respond.Error(writer, request, err)
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// It is shorthand for Require(policy.Authenticated) kept for readability at
// the route table.
func RequireAuth(next http.Handler) http.Handler {
	return Require(policy.Authenticated)(next)
}
