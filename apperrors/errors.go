// Package apperrors is the error taxonomy shared by services and controllers.
// Every error carries a Kind, which decides the HTTP status, and a short
// machine-checkable Reason that is returned to clients as-is.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	RateLimited
	Expired
	Mismatch
	Unauthorized
	Forbidden
	Upstream
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case RateLimited:
		return "rate_limited"
	case Expired:
		return "expired"
	case Mismatch:
		return "mismatch"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case Upstream:
		return "upstream"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Reason  string
	Message string
	// status overrides the Kind-derived HTTP status when non-zero.
	status int
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Reason. A target without a Reason matches any error of its Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Reason == "" {
		return t.Kind == e.Kind
	}
	return t.Kind == e.Kind && t.Reason == e.Reason
}

func New(kind Kind, reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

// NewValidation builds a Validation error with a caller-supplied message.
func NewValidation(reason, message string) *Error {
	return &Error{Kind: Validation, Reason: reason, Message: message}
}

var (
	ErrValidation       = New(Validation, "validation_error", "invalid request")
	ErrPasswordMismatch = New(Validation, "password_mismatch", "password fields didn't match")
	ErrWeakPassword     = New(Validation, "weak_password", "password does not meet the password policy")
	ErrDuplicateAccount = New(Validation, "duplicate_account", "an account with this username, email or phone already exists")
	ErrInvalidRole      = New(Validation, "invalid_role", "user_type must be admin or applicant")
	ErrAlreadyExists    = New(Validation, "already_exists", "record already exists")
	ErrIncompleteRecord = New(Validation, "incomplete_profile", "personal and education info must be completed first")
	ErrNotVerified      = New(Validation, "account_not_verified", "email and phone must be verified first")

	ErrAccountNotFound = &Error{Kind: NotFound, Reason: "account_not_found", Message: "no account found for this value", status: http.StatusBadRequest}
	ErrNoOTPFound      = &Error{Kind: NotFound, Reason: "otp_not_found", Message: "no OTP found, request a new one", status: http.StatusBadRequest}
	ErrRecordNotFound  = New(NotFound, "not_found", "record not found")

	ErrRateLimited = New(RateLimited, "rate_limited", "too many OTP requests, try again later")
	ErrOTPExpired  = &Error{Kind: Expired, Reason: "otp_expired", Message: "OTP has expired, request a new one", status: http.StatusBadRequest}
	ErrOTPMismatch = &Error{Kind: Mismatch, Reason: "otp_mismatch", Message: "invalid OTP", status: http.StatusBadRequest}

	ErrInvalidCredentials = New(Unauthorized, "invalid_credentials", "invalid username or password")
	ErrEmailUnverified    = New(Unauthorized, "email_unverified", "email is not verified")
	ErrPhoneUnverified    = New(Unauthorized, "phone_unverified", "phone number is not verified")
	ErrInvalidToken       = New(Unauthorized, "invalid_token", "token is invalid or expired")
	ErrMissingToken       = &Error{Kind: Unauthorized, Reason: "missing_token", Message: "refresh token is required", status: http.StatusBadRequest}

	ErrForbidden = New(Forbidden, "forbidden", "insufficient permissions")
	ErrUpstream  = New(Upstream, "upstream_error", "upstream service failed")
	ErrInternal  = New(Internal, "internal_error", "internal server error")
)

// As returns the *Error in err's chain, or ErrInternal when there is none.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}

func KindOf(err error) Kind {
	return As(err).Kind
}

// HTTPStatus maps err to the status code returned to clients.
func HTTPStatus(err error) int {
	appErr := As(err)
	if appErr.status != 0 {
		return appErr.status
	}
	switch appErr.Kind {
	case Validation, Expired, Mismatch:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case RateLimited:
		return http.StatusTooManyRequests
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
