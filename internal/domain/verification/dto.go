package verification

import (
	"github.com/stafftrail/stafftrail-backend-go/internal/domain/attendance"
	"github.com/stafftrail/stafftrail-backend-go/internal/pkg/validator"
)

// ========================================
// VERIFICATION DTOs
// ========================================

// VerifyRequest carries a scanned QR token and the optional captured face
// image. Token syntax is not validated here: a malformed token must be
// indistinguishable from an unknown one, so the orchestrator folds both into
// the token store's not-found error.
type VerifyRequest struct {
	Token    string  `json:"token"`
	ImageB64 string  `json:"image_b64"`
	Notes    *string `json:"notes"`
}

// ValidateImage requires the captured face image. The kiosk flow always
// sends one.
func (r *VerifyRequest) ValidateImage() error {
	if validator.IsEmpty(r.ImageB64) {
		return validator.ValidationErrors{{
			Field:   "image_b64",
			Message: "a captured face image is required",
		}}
	}

	return nil
}

type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

type VerifyResult struct {
	Outcome Outcome                    `json:"outcome"`
	Message string                     `json:"message"`
	Record  *attendance.RecordResponse `json:"record,omitempty"`
}
