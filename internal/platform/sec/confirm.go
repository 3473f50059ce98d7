// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// # Confirmation Codes

// CodeState captures the account fields a confirmation code is bound to.
//
// The code is a keyed hash over these fields, never persisted. Whenever any
// bound field changes (email corrected, username edited, role promoted) every
// previously issued code stops verifying, which makes the code single-use in
// spirit without an expiry table.
type CodeState struct {
	UserID    string
	Username  string
	Email     string
	Role      string
	UpdatedAt time.Time
}

// ConfirmationCodeService derives and checks signup confirmation codes.
//
// # Format
//
// A code is "<timestamp36>-<mac>", where timestamp36 is the issue time in
// base36 seconds and mac is a truncated hex HMAC-SHA256 over the timestamp
// and the bound [CodeState]. Verification recomputes the MAC for the
// submitted timestamp segment and compares in constant time.
type ConfirmationCodeService struct {
	secret []byte
	ttl    time.Duration
}

// macHexLen is the number of hex characters kept from the full HMAC digest.
const macHexLen = 20

// NewConfirmationCodeService creates a code service with the given signing
// secret and validity window.
func NewConfirmationCodeService(secret string, ttl time.Duration) *ConfirmationCodeService {
	return &ConfirmationCodeService{secret: []byte(secret), ttl: ttl}
}

// Generate derives a fresh confirmation code bound to the given user state.
func (service *ConfirmationCodeService) Generate(state CodeState) string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 36)
	return timestamp + "-" + service.mac(timestamp, state)
}

// Verify reports whether the submitted code matches the current user state
// and has not outlived the validity window.
func (service *ConfirmationCodeService) Verify(state CodeState, code string) bool {
	timestamp, submittedMAC, found := strings.Cut(code, "-")
	if !found || timestamp == "" || submittedMAC == "" {
		return false
	}

	issuedAt, err := strconv.ParseInt(timestamp, 36, 64)
	if err != nil {
		return false
	}

	// Reject expired codes and codes claiming to come from the future
	// (allowing a small clock skew).
	age := time.Since(time.Unix(issuedAt, 0))
	if age > service.ttl || age < -time.Minute {
		return false
	}

	expected := service.mac(timestamp, state)
	return hmac.Equal([]byte(expected), []byte(submittedMAC))
}

// mac computes the truncated hex HMAC for a timestamp segment and user state.
func (service *ConfirmationCodeService) mac(timestamp string, state CodeState) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		timestamp,
		state.UserID,
		state.Username,
		state.Email,
		state.Role,
		state.UpdatedAt.UTC().UnixNano(),
	)

	digest := hmac.New(sha256.New, service.secret)
	digest.Write([]byte(payload))
	return hex.EncodeToString(digest.Sum(nil))[:macHexLen]
}
