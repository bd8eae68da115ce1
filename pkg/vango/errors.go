package vango

import vangoerrors "github.com/vango-dev/showcase/internal/errors"

// ErrNoProvider is returned by Context.Use when no ancestor scope provided
// a value. Errors from Use carry code E001 and match with errors.Is.
var ErrNoProvider = vangoerrors.New("E001")

