package models

import "errors"

var (
	// ErrNoTransactions means extraction found zero valid transaction rows.
	// Callers must treat this as a distinct failure, not as an empty summary:
	// a zero-filled financial summary is indistinguishable from a genuinely
	// empty but valid account.
	ErrNoTransactions = errors.New("no transactions detected")

	// ErrNoTextLayer means the PDF yielded no positioned text at all.
	// Image-only / scanned statements are not supported.
	ErrNoTextLayer = errors.New("no text layer found in PDF")
)
