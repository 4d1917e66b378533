package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/eringen/folio/remote"
)

// Code classifies a content failure.
type Code string

const (
	CodeConfig   Code = "config"
	CodeFetch    Code = "fetch"
	CodeNotFound Code = "not_found"
	CodeParse    Code = "parse"
	CodeInvalid  Code = "invalid_query"
)

// Sentinels for errors.Is. Every *Error matches the sentinel of its Code.
var (
	ErrConfig   = errors.New("content: source not configured")
	ErrFetch    = errors.New("content: fetch failed")
	ErrNotFound = errors.New("content: not found")
	ErrParse    = errors.New("content: unusable frontmatter")
	ErrInvalid  = errors.New("content: invalid query")
)

// Error is returned by every Service operation.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("content: %s: %v", e.Code, e.Err)
	}
	return "content: " + string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Code.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeConfig:
		return target == ErrConfig
	case CodeFetch:
		return target == ErrFetch
	case CodeNotFound:
		return target == ErrNotFound
	case CodeParse:
		return target == ErrParse
	case CodeInvalid:
		return target == ErrInvalid
	}
	return false
}

// CodeOf returns the Code carried by err, or "" if err is not an *Error.
func CodeOf(err error) Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func notFound(slug string, err error) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("post %q not found", slug), Err: err}
}

// translate maps gateway errors onto content errors. Context errors pass
// through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var (
		cfgErr   *remote.ConfigError
		nfErr    *remote.NotFoundError
		fetchErr *remote.FetchError
	)
	switch {
	case errors.As(err, &cfgErr):
		return &Error{Code: CodeConfig, Message: cfgErr.Error(), Err: err}
	case errors.As(err, &nfErr):
		return notFound(nfErr.Slug, err)
	case errors.As(err, &fetchErr):
		return &Error{Code: CodeFetch, Message: "could not load posts: " + fetchErr.Error(), Err: err}
	}
	return &Error{Code: CodeFetch, Message: "could not load posts: " + err.Error(), Err: err}
}
