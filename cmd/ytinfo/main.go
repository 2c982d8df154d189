package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/famomatic/ytinfo/client"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ytinfo: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps client error categories to process exit codes.
func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return 2
	}
	switch client.ClassifyError(err) {
	case client.ErrorCategoryInvalidInput:
		return 2
	case client.ErrorCategoryUnavailable, client.ErrorCategoryUnplayable, client.ErrorCategoryLoginRequired:
		return 3
	case client.ErrorCategoryHTTPStatus, client.ErrorCategoryCanceled:
		return 4
	case client.ErrorCategoryParse, client.ErrorCategoryDecipher:
		return 5
	}
	return 1
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
