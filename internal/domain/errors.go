package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource (application, certificate).
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable signals that the backend API cannot be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendStatus signals a non-2xx backend response.
	ErrBackendStatus = errors.New("backend error status")
	// ErrCertificateNotReady signals that a certificate is not issued yet.
	ErrCertificateNotReady = errors.New("certificate not ready")
	// ErrInvalidInput signals a malformed tool argument.
	ErrInvalidInput = errors.New("invalid input")
)

// StatusError wraps ErrBackendStatus with the HTTP status code returned
// by the backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrBackendStatus.Error(), e.Code)
}

func (e *StatusError) Unwrap() error { return ErrBackendStatus }

// NewStatusError creates a backend status error.
func NewStatusError(code int) error {
	return &StatusError{Code: code}
}

// CertificateNotReadyError wraps ErrCertificateNotReady with the message
// the backend returned in its 404 body.
type CertificateNotReadyError struct {
	Message string
}

func (e *CertificateNotReadyError) Error() string {
	if e.Message == "" {
		return ErrCertificateNotReady.Error()
	}
	return e.Message
}

func (e *CertificateNotReadyError) Unwrap() error { return ErrCertificateNotReady }

// NewCertificateNotReady creates a certificate-not-ready error carrying
// the backend's message.
func NewCertificateNotReady(message string) error {
	return &CertificateNotReadyError{Message: message}
}
