package server

import (
	vangoerrors "github.com/vango-dev/showcase/internal/errors"
)

// Sentinel errors. Match with errors.Is; returned errors carry detail.
var (
	ErrRenderPanic      = vangoerrors.New("E002")
	ErrHandlerPanic     = vangoerrors.New("E003")
	ErrHandlerNotFound  = vangoerrors.New("E009")
	ErrInstanceNotFound = vangoerrors.New("E010")
	ErrBadFrame         = vangoerrors.New("E060")
	ErrBadHandler       = vangoerrors.New("E061")
)
