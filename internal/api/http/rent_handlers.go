package httpapi

import (
	"net/http"
	"strconv"

	"renttrack-backend/internal/domain"
)

func (h *Handler) createRentConfig(w http.ResponseWriter, r *http.Request) {
	var rc domain.RentConfig
	if !decodeBody(w, r, &rc) {
		return
	}
	if err := h.configs.Create(r.Context(), actorID(r), pathSlug(r), &rc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rc)
}

func (h *Handler) updateRentConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var rc domain.RentConfig
	if !decodeBody(w, r, &rc) {
		return
	}
	rc.ID = id
	if err := h.configs.Update(r.Context(), actorID(r), pathSlug(r), &rc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

func (h *Handler) deleteRentConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.configs.Delete(r.Context(), actorID(r), pathSlug(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listRentConfigs(w http.ResponseWriter, r *http.Request) {
	occupancyID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	configs, err := h.configs.ListByOccupancy(r.Context(), actorID(r), pathSlug(r), occupancyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

func (h *Handler) generatePeriod(w http.ResponseWriter, r *http.Request) {
	configID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	period, err := h.periods.GenerateNext(r.Context(), actorID(r), pathSlug(r), configID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, period)
}

func (h *Handler) listPeriodsByConfig(w http.ResponseWriter, r *http.Request) {
	configID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	periods, err := h.periods.ListByConfig(r.Context(), actorID(r), pathSlug(r), configID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

type periodListResponse struct {
	Periods  []domain.RentPeriod `json:"periods"`
	Total    int32               `json:"total"`
	Page     int32               `json:"page"`
	PageSize int32               `json:"page_size"`
}

func (h *Handler) listPeriods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	pageSize := queryInt(q.Get("page_size"), 20)

	periods, total, err := h.periods.List(r.Context(), actorID(r), pathSlug(r), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, periodListResponse{Periods: periods, Total: total, Page: page, PageSize: pageSize})
}

func (h *Handler) deletePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.periods.Delete(r.Context(), actorID(r), pathSlug(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) changePeriodStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req struct {
		Status domain.PeriodStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	period, err := h.periods.ChangeStatus(r.Context(), actorID(r), pathSlug(r), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, period)
}

func queryInt(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}
