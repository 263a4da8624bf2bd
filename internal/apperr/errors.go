// Package apperr defines the error taxonomy shared across the client layer.
package apperr

import "errors"

var (
	// ErrNotBound means the document has no concrete backing file, so no
	// command can be issued for it.
	ErrNotBound = errors.New("document not bound to a file")
	// ErrNoSession means no active server session exists for the document's
	// notebook.
	ErrNoSession = errors.New("no active session")
	// ErrMalformedArgs means a creation argument set failed shape validation
	// before any remote call was attempted.
	ErrMalformedArgs = errors.New("malformed arguments")
	// ErrNoResult means a remote command completed without a usable result.
	ErrNoResult = errors.New("no result")
	// ErrNotebookNotFound means no .zk marker directory exists above the
	// document.
	ErrNotebookNotFound = errors.New("notebook not found")
)
