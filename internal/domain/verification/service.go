package verification

import (
	"context"
)

// FaceMatcher is the external face verification capability. Verified=false is
// a judgment, not an error; errors mean the capability itself failed and the
// attempt may be retried.
type FaceMatcher interface {
	Verify(ctx context.Context, employeeID int64, imageB64 string) (bool, error)
}

// VerificationService composes token resolution, optional face corroboration
// and the attendance ledger transition into one operation. Side effects happen
// only at the ledger step; everything before it is safe to retry.
//
// The explicit-mode and the derived-mode pipelines are deliberately separate
// entry points so they can never disagree about the intended transition.
type VerificationService interface {
	// VerifyCheckIn resolves the token and applies a check-in. Face
	// corroboration runs when an image is supplied.
	VerifyCheckIn(ctx context.Context, req VerifyRequest) (VerifyResult, error)

	// VerifyCheckOut resolves the token and applies a check-out.
	VerifyCheckOut(ctx context.Context, req VerifyRequest) (VerifyResult, error)

	// VerifyScan is the kiosk/mobile flow: the face image is mandatory and the
	// transition is derived from the employee's current state (open record
	// means check-out, otherwise check-in).
	VerifyScan(ctx context.Context, req VerifyRequest) (VerifyResult, error)
}
