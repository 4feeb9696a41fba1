package failure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUsage         = errors.New("usage error")
	ErrPathNotFound  = errors.New("path not found")
	ErrArchiveRead   = errors.New("archive read error")
	ErrFilesystem    = errors.New("filesystem error")
	ErrConfiguration = errors.New("configuration error")
	ErrLocked        = errors.New("root locked")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

type noticeError struct {
	marker  error
	message string
}

func (e *noticeError) Error() string { return e.message }
func (e *noticeError) Unwrap() error { return e.marker }

// Notice returns an error whose message is meant for the user verbatim while
// still matching marker with errors.Is.
func Notice(marker error, message string) error {
	if marker == nil {
		marker = ErrUsage
	}
	return &noticeError{marker: marker, message: message}
}

// Recoverable reports whether err is an input validation failure the CLI
// answers with a message instead of aborting.
func Recoverable(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrPathNotFound)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sorter failure"
	}
	return strings.Join(parts, ": ")
}
