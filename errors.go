package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrUserNotFound is the error returned for every failed login. The message is
// deliberately identical whether the account is missing, inactive, or the
// password was wrong, so callers cannot probe for account existence.
var ErrUserNotFound = goerrors.New("User not found", goerrors.CategoryAuth).
	WithTextCode("USER_NOT_FOUND").
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityNotFound is returned when a verified claim references an account
// that no longer exists.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrDuplicateIdentifier is returned when the store rejects a registration
// because the username or email is already taken.
var ErrDuplicateIdentifier = goerrors.New("username or email already registered", goerrors.CategoryConflict).
	WithTextCode("DUPLICATE_IDENTIFIER").
	WithCode(goerrors.CodeConflict)

// ErrActivationCodeNotFound is returned when no account matches the submitted
// activation code.
var ErrActivationCodeNotFound = goerrors.New("activation code not found", goerrors.CategoryNotFound).
	WithTextCode("ACTIVATION_CODE_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrForbidden is returned by the role gate when the caller's role is not in
// the required set, or when no claims were resolved at all.
var ErrForbidden = goerrors.New("Forbidden", goerrors.CategoryAuthz).
	WithTextCode("FORBIDDEN").
	WithCode(goerrors.CodeForbidden)

// ErrTokenExpired is returned when a token is past its expiry horizon.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidSignature is returned when a token was tampered with or signed
// with a different secret.
var ErrInvalidSignature = goerrors.New("token signature is invalid", goerrors.CategoryAuth).
	WithTextCode("TOKEN_INVALID_SIGNATURE").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that are structurally invalid.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the verify failure from the credential hasher.
var ErrMismatchedHashAndPassword = goerrors.New("mismatched password", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryBadInput).
	WithTextCode("EMPTY_PASSWORD").
	WithCode(goerrors.CodeBadRequest)

// WrapValidationError converts an ozzo validation error into a rich error that
// is distinguishable from store and duplicate failures.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "Invalid request payload").
		WithTextCode("VALIDATION_ERROR").
		WithCode(goerrors.CodeBadRequest)
}

// IsValidationError reports whether err carries the validation category.
func IsValidationError(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryValidation
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
