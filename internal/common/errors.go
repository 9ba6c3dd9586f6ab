// Package common holds sentinel errors and small utilities shared by the
// server, the transport layer, and the CLI client.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already registered")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// authentication errors
	ErrorUserNotFound    = errors.New("email not found")
	ErrorAccountInactive = errors.New("account is not active")
	ErrorWeakPassword    = errors.New("password must be at least 6 characters")
	ErrorInvalidName     = errors.New("name must be at least 2 characters")
	ErrorNoSession       = errors.New("no active session")

	// upload errors
	ErrorFileTooLarge    = errors.New("file too large, maximum is 5 MiB")
	ErrorUnsupportedType = errors.New("unsupported file type, use JPG, PNG or PDF")
	ErrorUploadFailed    = errors.New("upload failed, please try again")

	ErrorInvalidToken        = errors.New("invalid token")
	ErrorRefreshTokenExpired = errors.New("refresh token expired")
)
