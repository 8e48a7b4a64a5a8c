package booking

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the expected, caller-recoverable failures of the
// booking core. Anything outside this taxonomy is an infrastructure
// fault and propagates as a plain wrapped error.
type ErrorKind string

const (
	KindValidation           ErrorKind = "validation"
	KindNotFound             ErrorKind = "not_found"
	KindOutsideBusinessHours ErrorKind = "outside_business_hours"
	KindPastDate             ErrorKind = "past_date"
	KindUnavailable          ErrorKind = "unavailable"
	KindSlotUnavailable      ErrorKind = "slot_unavailable"
	KindConflict             ErrorKind = "conflict"
	KindPermissionDenied     ErrorKind = "permission_denied"
)

// Error carries the kind plus enough structure (resource + detail) for
// the API layer to render a specific message.
type Error struct {
	Kind       ErrorKind
	Resource   string
	ResourceID string
	Detail     string
}

func (e *Error) Error() string {
	switch {
	case e.Resource != "" && e.ResourceID != "":
		return fmt.Sprintf("%s: %s %s: %s", e.Kind, e.Resource, e.ResourceID, e.Detail)
	case e.Resource != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Resource, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

// KindOf returns the kind of err, or "" for infrastructure errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Detail: fmt.Sprintf(format, args...)}
}

func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, ResourceID: id, Detail: "does not exist"}
}

func Unavailable(resource, id, detail string) *Error {
	return &Error{Kind: KindUnavailable, Resource: resource, ResourceID: id, Detail: detail}
}

func SlotUnavailable(detail string) *Error {
	return &Error{Kind: KindSlotUnavailable, Resource: "slot", Detail: detail}
}

func Conflict(resource, id, detail string) *Error {
	return &Error{Kind: KindConflict, Resource: resource, ResourceID: id, Detail: detail}
}

func PastDate(detail string) *Error {
	return &Error{Kind: KindPastDate, Detail: detail}
}

func OutsideBusinessHours(detail string) *Error {
	return &Error{Kind: KindOutsideBusinessHours, Detail: detail}
}

func PermissionDenied(detail string) *Error {
	return &Error{Kind: KindPermissionDenied, Detail: detail}
}
