// Package errors defines web typed application errors.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/participant/filter"
	"github.com/louisbranch/galien/internal/registration"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindInvalidInput     Kind = "invalid_input"
	KindForbidden        Kind = "forbidden"
	KindUnavailable      Kind = "unavailable"
	KindNotFound         Kind = "not_found"
	KindSubmissionFailed Kind = "submission_failed"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	// Err is the underlying cause, kept for logs and errors.Is.
	Err error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.Err
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds a typed Error around cause.
func Wrap(kind Kind, key string, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message, Err: cause}
}

// FromDomain maps domain sentinels onto typed web errors. Errors that are
// already typed, and unknown errors, are returned unchanged.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		return err
	}
	var validation *registration.ValidationError
	switch {
	case stderrors.As(err, &validation):
		return Error{Kind: KindInvalidInput, Key: validation.Key, Message: validation.Message, Err: err}
	case stderrors.Is(err, participant.ErrNotFound):
		return Wrap(KindNotFound, "error.web.message.participant_not_found", err)
	case stderrors.Is(err, participant.ErrNotApproved):
		return Wrap(KindInvalidInput, "error.web.message.participant_not_approved", err)
	case stderrors.Is(err, filter.ErrInvalid):
		return Wrap(KindInvalidInput, "error.web.message.participant_filter_invalid", err)
	case stderrors.Is(err, registration.ErrSubmissionInFlight):
		return Wrap(KindSubmissionFailed, "error.web.message.registration_submission_in_progress", err)
	case stderrors.Is(err, registration.ErrSubmissionFailed):
		return Wrap(KindSubmissionFailed, "registration.error.submission_failed", err)
	default:
		return err
	}
}

// KindOf returns the error kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(FromDomain(err), &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(FromDomain(err), &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable, KindSubmissionFailed:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
