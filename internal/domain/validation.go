package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountIDFormat = errors.New("invalid account id format")
	ErrCredentialTooShort     = errors.New("credential too short")
	ErrCredentialTooLong      = errors.New("credential too long")
)

// Validation constants
const (
	MaxAccountIDLength  = 64
	MinAccountIDLength  = 1
	MinCredentialLength = 4
	MaxCredentialLength = 128
)

var accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidateAccountID validates a caller-chosen account identifier.
func ValidateAccountID(id string) error {
	id = strings.TrimSpace(id)

	if len(id) < MinAccountIDLength {
		return ErrEmptyAccountID
	}

	if len(id) > MaxAccountIDLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidAccountIDFormat, MaxAccountIDLength)
	}

	if !accountIDRegex.MatchString(id) {
		return fmt.Errorf("%w: only letters, digits, '.', '_' and '-' allowed", ErrInvalidAccountIDFormat)
	}

	return nil
}

// ValidateCredential validates a plaintext credential before hashing.
func ValidateCredential(credential string) error {
	if credential == "" {
		return ErrEmptyCredential
	}

	if len(credential) < MinCredentialLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrCredentialTooShort, MinCredentialLength)
	}

	if len(credential) > MaxCredentialLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrCredentialTooLong, MaxCredentialLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
