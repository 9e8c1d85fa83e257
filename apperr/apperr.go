package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so handlers can map it to an HTTP status
// without inspecting messages.
type Kind string

const (
	KindNotFound               Kind = "not_found"
	KindConflict               Kind = "conflict"
	KindMissingDefaultWardrobe Kind = "missing_default_wardrobe"
	KindStorage                Kind = "storage"
)

// Error carries a stable machine-checkable reason code alongside the
// human message, plus optional metadata for debugging.
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Meta    map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithMeta attaches a metadata key/value and returns the error for chaining.
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

func NotFound(reason, message string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Message: message}
}

func Conflict(reason, message string) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Message: message}
}

func MissingDefaultWardrobe(message string) *Error {
	return &Error{Kind: KindMissingDefaultWardrobe, Reason: "MISSING_DEFAULT_WARDROBE", Message: message}
}

func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Reason: "STORAGE", Message: message, Err: err}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error,
// otherwise KindStorage: an unclassified failure is a server-side one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// ReasonOf returns the stable reason code, or "INTERNAL" for
// unclassified errors.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return "INTERNAL"
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsMissingDefaultWardrobe(err error) bool {
	return KindOf(err) == KindMissingDefaultWardrobe
}
