package httpapi

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"renttrack-backend/internal/service"
)

type createPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Reference string          `json:"reference"`
}

type updatePaymentRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	PaidAt    *time.Time       `json:"paid_at"`
	Reference *string          `json:"reference"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	periodID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req createPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payment, err := h.payments.Create(r.Context(), service.CreatePaymentInput{
		ActorID:      actorID(r),
		OrgSlug:      pathSlug(r),
		RentPeriodID: periodID,
		Amount:       req.Amount,
		PaidAt:       req.PaidAt,
		Reference:    req.Reference,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req updatePaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payment, err := h.payments.Update(r.Context(), service.UpdatePaymentInput{
		ActorID:   actorID(r),
		OrgSlug:   pathSlug(r),
		PaymentID: id,
		Amount:    req.Amount,
		PaidAt:    req.PaidAt,
		Reference: req.Reference,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

type deletePaymentResponse struct {
	PeriodStatus   string `json:"period_status"`
	StatusReverted bool   `json:"status_reverted"`
	RevertFailed   bool   `json:"revert_failed,omitempty"`
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	deletion, err := h.payments.Delete(r.Context(), actorID(r), pathSlug(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deletePaymentResponse{
		PeriodStatus:   string(deletion.PeriodStatus),
		StatusReverted: deletion.StatusReverted,
		RevertFailed:   deletion.RevertFailed,
	})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	periodID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	payments, err := h.payments.ListByPeriod(r.Context(), actorID(r), pathSlug(r), periodID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
