package service

import "errors"

var (
	ErrHighlightNotFound      = errors.New("highlight not found")
	ErrHighlightClassNotFound = errors.New("highlight class not found")
	ErrLastHighlightClass     = errors.New("at least one highlight class must exist")
	ErrContentNotFound        = errors.New("notebook or chapter not found")
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
)

var ErrExportDisabled = errors.New("export is not configured")
