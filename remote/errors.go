package remote

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("remote: not found")

// ConfigError reports settings that must be present before any request.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("remote: repository %s not configured", strings.Join(e.Missing, " and "))
}

// FetchError is a failed request to the content host. StatusCode is zero
// when no response arrived.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("remote: %s: %s returned %s", e.Op, e.URL, e.Status)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	return fmt.Sprintf("remote: %s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFoundError means no readable file exists for Slug.
type NotFoundError struct {
	Slug string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: post %q not found: %v", e.Slug, e.Err)
	}
	return fmt.Sprintf("remote: post %q not found", e.Slug)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
