// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the entity exists but belongs to another account.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized indicates a missing, invalid or expired access token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrValidation indicates malformed or incomplete input.
	ErrValidation = errors.New("validation")

	// ErrWeakPassword indicates the password does not satisfy the policy.
	ErrWeakPassword = errors.New("weak password")

	// ErrInvalidVariant indicates an unknown card type tag.
	ErrInvalidVariant = errors.New("invalid card type")

	// ErrUpstream indicates the generation oracle failed.
	ErrUpstream = errors.New("upstream failure")

	// ErrOracleParse indicates the oracle answered without a parseable payload.
	ErrOracleParse = errors.New("oracle response parse")
)

// Error attaches a client-facing message to one of the sentinels above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// Invalid reports a validation failure with the given message.
func Invalid(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

// AccountGone reports a well-formed token whose account no longer exists.
func AccountGone() error {
	return &Error{Kind: ErrUnauthorized, Msg: "User not found, authorization denied"}
}

// NotFound reports a missing entity, e.g. NotFound("Deck") -> "Deck not found".
func NotFound(what string) error { return &Error{Kind: ErrNotFound, Msg: what + " not found"} }
