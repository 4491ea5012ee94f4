// Package common defines shared constants and sentinel errors used across
// client and server layers of pirdesk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Gateway-level errors. ErrConnection covers any transport failure
	// (network, HTTP status, undecodable body); the remote message is
	// never folded into it.
	ErrConnection = errors.New("connection error")

	// Validation errors raised before any remote call is made.
	ErrNoDocumentKey   = errors.New("no document key provided")
	ErrNoActiveFinding = errors.New("select a finding first")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
