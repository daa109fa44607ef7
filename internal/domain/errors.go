package domain

import "net/http"

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrorCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeConfigMissing   ErrorCode = "CONFIG_MISSING"
	ErrorCodeDateOutOfRange  ErrorCode = "DATE_OUT_OF_RANGE"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func NotFound(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeNotFound, Message: msg, HTTPStatus: http.StatusNotFound}
}

func ConfigMissing(msg string) *DomainError {
	return &DomainError{Code: ErrorCodeConfigMissing, Message: msg, HTTPStatus: http.StatusBadRequest}
}

// Upstream wraps a non-200 answer from GitHub or KASM, forwarding the
// upstream status to the caller.
func Upstream(msg string, status int) *DomainError {
	return &DomainError{Code: ErrorCodeUpstreamFailure, Message: msg, HTTPStatus: status}
}
