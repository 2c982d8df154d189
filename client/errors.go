package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/famomatic/ytinfo/internal/playerjs"
	"github.com/famomatic/ytinfo/internal/types"
)

var (
	// ErrInvalidInput indicates malformed input (not a video ID/url, bad language tag).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable indicates the video has neither a format nor a manifest.
	ErrUnavailable = types.ErrVideoUnavailable
)

type (
	// ParseError reports a malformed watch payload, player response or manifest.
	ParseError = types.ParseError
	// PlayabilityError reports a video the platform marked unplayable.
	PlayabilityError = types.PlayabilityError
	// HTTPStatusError reports a non-2xx upstream response.
	HTTPStatusError = types.HTTPStatusError
	// DecipherError reports a player script that could not be used.
	DecipherError = playerjs.DecipherError
)

// ValidationError describes why an input was rejected. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %q (%s): %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %q (%s)", e.Input, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ErrorCategory is a stable classification of client errors.
type ErrorCategory string

const (
	ErrorCategoryInvalidInput  ErrorCategory = "invalid_input"
	ErrorCategoryUnavailable   ErrorCategory = "unavailable"
	ErrorCategoryLoginRequired ErrorCategory = "login_required"
	ErrorCategoryUnplayable    ErrorCategory = "unplayable"
	ErrorCategoryParse         ErrorCategory = "parse"
	ErrorCategoryDecipher      ErrorCategory = "decipher"
	ErrorCategoryHTTPStatus    ErrorCategory = "http_status"
	ErrorCategoryCanceled      ErrorCategory = "canceled"
	ErrorCategoryUnknown       ErrorCategory = "unknown"
)

// ClassifyError maps an error returned by the client to its category.
func ClassifyError(err error) ErrorCategory {
	if err == nil {
		return ""
	}
	var (
		playability *PlayabilityError
		parse       *ParseError
		decipher    *DecipherError
		status      *HTTPStatusError
	)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return ErrorCategoryInvalidInput
	case errors.Is(err, ErrUnavailable):
		return ErrorCategoryUnavailable
	case errors.As(err, &playability):
		if playability.RequiresLogin() {
			return ErrorCategoryLoginRequired
		}
		return ErrorCategoryUnplayable
	case errors.As(err, &parse):
		return ErrorCategoryParse
	case errors.As(err, &decipher):
		return ErrorCategoryDecipher
	case errors.As(err, &status):
		return ErrorCategoryHTTPStatus
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCategoryCanceled
	}
	return ErrorCategoryUnknown
}
