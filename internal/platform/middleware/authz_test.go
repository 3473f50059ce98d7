// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/ctxutil"
	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/sec"
)

// # Test Doubles

// fakeVerifier accepts the single token "good-token".
type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(tokenStr string) (string, error) {
	if tokenStr == "good-token" {
		return "user-1", nil
	}
	return "", errors.New("bad signature")
}

// fakeLoader returns a canned claims/error pair.
type fakeLoader struct {
	claims *sec.AuthClaims
	err    error
}

func (f *fakeLoader) LoadIdentity(_ context.Context, _ string) (*sec.AuthClaims, error) {
	return f.claims, f.err
}

// capturingHandler records the claims visible to the downstream handler.
type capturingHandler struct {
	called bool
	claims *sec.AuthClaims
}

func (h *capturingHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.called = true
	h.claims = ctxutil.GetAuthUser(request.Context())
	writer.WriteHeader(http.StatusOK)
}

func serveAuthenticated(t *testing.T, loader *fakeLoader, authorization string) (*httptest.ResponseRecorder, *capturingHandler) {
	t.Helper()

	downstream := &capturingHandler{}
	handler := middleware.Authenticate(fakeVerifier{}, loader)(downstream)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder, downstream
}

/*
TestAuthenticate_AnonymousPassthrough verifies a request without an
Authorization header reaches the handler with no claims attached.
*/
func TestAuthenticate_AnonymousPassthrough(t *testing.T) {
	recorder, downstream := serveAuthenticated(t, &fakeLoader{}, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, downstream.called)
	assert.Nil(t, downstream.claims)
}

/*
TestAuthenticate_InvalidToken covers malformed headers and rejected tokens.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	cases := []struct {
		name          string
		authorization string
	}{
		{name: "wrong_scheme", authorization: "Basic abc123"},
		{name: "missing_token", authorization: "Bearer"},
		{name: "rejected_signature", authorization: "Bearer forged-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, downstream := serveAuthenticated(t, &fakeLoader{}, tc.authorization)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, downstream.called)
		})
	}
}

/*
TestAuthenticate_RevokedIdentityIs401 verifies that a token whose account
has been deleted or deactivated is refused as unauthorized.
*/
func TestAuthenticate_RevokedIdentityIs401(t *testing.T) {
	for _, loadErr := range []error{
		apperr.NotFound("User"),
		apperr.Unauthorized("Account is deactivated"),
	} {
		recorder, downstream := serveAuthenticated(t, &fakeLoader{err: loadErr}, "Bearer good-token")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
		assert.False(t, downstream.called)
	}
}

/*
TestAuthenticate_StorageFailureIs500 verifies that a failure to load the
identity — a storage outage, not a revoked account — surfaces as an
internal error rather than masquerading as 401.
*/
func TestAuthenticate_StorageFailureIs500(t *testing.T) {
	cases := []struct {
		name    string
		loadErr error
	}{
		{name: "plain_error", loadErr: errors.New("connection refused")},
		{name: "wrapped_internal", loadErr: apperr.Internal(errors.New("pool exhausted"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, downstream := serveAuthenticated(t, &fakeLoader{err: tc.loadErr}, "Bearer good-token")

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
			assert.False(t, downstream.called)
		})
	}
}

/*
TestAuthenticate_InjectsLiveClaims verifies the happy path: the claims the
loader resolves, not anything baked into the token, reach the handler.
*/
func TestAuthenticate_InjectsLiveClaims(t *testing.T) {
	loader := &fakeLoader{claims: &sec.AuthClaims{
		UserID:   "user-1",
		Username: "alice",
		Role:     sec.RoleModerator,
	}}

	recorder, downstream := serveAuthenticated(t, loader, "Bearer good-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, downstream.claims)
	assert.Equal(t, "alice", downstream.claims.Username)
	assert.True(t, downstream.claims.Role.IsModerator())
}
