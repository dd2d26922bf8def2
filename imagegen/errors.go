package imagegen

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey is returned when a generator is created without a credential.
var ErrNoAPIKey = errors.New("imagegen: no API key configured")

// Kind classifies generation failures by what the caller should do about
// them.
type Kind int

const (
	// KindUnknown is any failure not covered below, transport errors
	// included. The message is shown as is.
	KindUnknown Kind = iota

	// KindAuth means the credential was rejected. Callers should forget
	// it and ask for a new one.
	KindAuth

	// KindBlocked means the service refused the request. Reason holds the
	// block reason it gave.
	KindBlocked

	// KindMalformed means the reply carried no image. Reason holds any
	// text the model returned instead.
	KindMalformed
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindAuth:
		return "auth"
	case KindBlocked:
		return "blocked"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a classified generation failure.
type Error struct {
	Kind Kind

	// Reason is the block reason for KindBlocked and the text reply, if
	// any, for KindMalformed.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindAuth:
		return "imagegen: the provided API key is invalid"
	case KindBlocked:
		return fmt.Sprintf("imagegen: request was blocked by safety filters: %s", e.Reason)
	case KindMalformed:
		if e.Reason != "" {
			return fmt.Sprintf("imagegen: the model responded with text instead of an image: %q", e.Reason)
		}
		if e.Err != nil {
			return "imagegen: " + e.Err.Error()
		}
		return "imagegen: the model did not return an image"
	default:
		if e.Err != nil {
			return "imagegen: generation failed: " + e.Err.Error()
		}
		return "imagegen: generation failed"
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, KindUnknown when err is not a classified
// generation error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
