package storage

import (
	"errors"
	"fmt"
)

// ErrEmptyUpload is returned by Store when the supplied content is empty.
var ErrEmptyUpload = errors.New("uploaded file is empty")

// Kind classifies a storage failure. Callers branch on the kind rather than
// matching error strings.
type Kind int

const (
	// KindContainment means a path resolved outside the sandboxed root.
	KindContainment Kind = iota + 1
	// KindNotFound means the artifact does not exist.
	KindNotFound
	// KindUnreadable means the artifact exists but cannot be read.
	KindUnreadable
	// KindIO covers all other filesystem failures.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindContainment:
		return "containment"
	case KindNotFound:
		return "not found"
	case KindUnreadable:
		return "unreadable"
	case KindIO:
		return "io failure"
	default:
		return "unknown"
	}
}

// Error is a storage failure tagged with a Kind and the offending path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage: %s: %q: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("storage: %s: %q", e.Kind, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or 0 if err is not a storage error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
