package verification

import "errors"

// Verification errors
var (
	// ErrFaceServiceUnavailable means the face service could not be reached or
	// timed out. Safe to retry; the ledger was not touched.
	ErrFaceServiceUnavailable = errors.New("face verification service unavailable")

	// ErrFaceRejected means the face did not match the claimed identity.
	// Terminal for this attempt; the ledger was not touched.
	ErrFaceRejected = errors.New("face verification failed")
)
