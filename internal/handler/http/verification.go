package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stafftrail/stafftrail-backend-go/internal/domain/verification"
	"github.com/stafftrail/stafftrail-backend-go/internal/handler/http/response"
)

type VerificationHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
}

type verificationHandlerImpl struct {
	verificationService verification.VerificationService
}

func NewVerificationHandler(verificationService verification.VerificationService) VerificationHandler {
	return &verificationHandlerImpl{
		verificationService: verificationService,
	}
}

func (h *verificationHandlerImpl) decode(w http.ResponseWriter, r *http.Request) (verification.VerifyRequest, bool) {
	var req verification.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return verification.VerifyRequest{}, false
	}
	return req, true
}

// writeResult reports the scan outcome. Rejections and adapter outages carry
// an outcome payload the kiosk can display directly.
func (h *verificationHandlerImpl) writeResult(w http.ResponseWriter, result verification.VerifyResult, err error) {
	switch {
	case err == nil:
		response.SuccessWithMessage(w, result.Message, result)

	case errors.Is(err, verification.ErrFaceRejected):
		response.JSON(w, http.StatusUnauthorized, response.Response{
			Success: false,
			Data: verification.VerifyResult{
				Outcome: verification.OutcomeRejected,
				Message: "Face verification failed",
			},
			Error: &response.ErrorDetail{
				Code:    "FACE_REJECTED",
				Message: "Face verification failed",
			},
		})

	case errors.Is(err, verification.ErrFaceServiceUnavailable):
		response.JSON(w, http.StatusBadGateway, response.Response{
			Success: false,
			Data: verification.VerifyResult{
				Outcome: verification.OutcomeError,
				Message: "Face verification service is unavailable, please try again",
			},
			Error: &response.ErrorDetail{
				Code:    "FACE_SERVICE_UNAVAILABLE",
				Message: "Face verification service is unavailable, please try again",
			},
		})

	default:
		response.HandleError(w, err)
	}
}

// CheckIn implements VerificationHandler
func (h *verificationHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.verificationService.VerifyCheckIn(r.Context(), req)
	h.writeResult(w, result, err)
}

// CheckOut implements VerificationHandler
func (h *verificationHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.verificationService.VerifyCheckOut(r.Context(), req)
	h.writeResult(w, result, err)
}

// Verify implements VerificationHandler
func (h *verificationHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.verificationService.VerifyScan(r.Context(), req)
	h.writeResult(w, result, err)
}
