package httpapi

import (
	"net/http"
	"time"

	"renttrack-backend/internal/domain"
)

func (h *Handler) createTenant(w http.ResponseWriter, r *http.Request) {
	var t domain.Tenant
	if !decodeBody(w, r, &t) {
		return
	}
	if err := h.tenancy.CreateTenant(r.Context(), actorID(r), pathSlug(r), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var t domain.Tenant
	if !decodeBody(w, r, &t) {
		return
	}
	t.ID = id
	if err := h.tenancy.UpdateTenant(r.Context(), actorID(r), pathSlug(r), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.tenancy.DeleteTenant(r.Context(), actorID(r), pathSlug(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenancy.ListTenants(r.Context(), actorID(r), pathSlug(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *Handler) createOccupancy(w http.ResponseWriter, r *http.Request) {
	var o domain.Occupancy
	if !decodeBody(w, r, &o) {
		return
	}
	if err := h.tenancy.CreateOccupancy(r.Context(), actorID(r), pathSlug(r), &o); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) updateOccupancy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var o domain.Occupancy
	if !decodeBody(w, r, &o) {
		return
	}
	o.ID = id
	if err := h.tenancy.UpdateOccupancy(r.Context(), actorID(r), pathSlug(r), &o); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) deleteOccupancy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.tenancy.DeleteOccupancy(r.Context(), actorID(r), pathSlug(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// listOccupancies returns all occupancies, or only those active on a given
// day when the active_on query parameter carries a YYYY-MM-DD date.
func (h *Handler) listOccupancies(w http.ResponseWriter, r *http.Request) {
	var occupancies []domain.Occupancy
	var err error
	if raw := r.URL.Query().Get("active_on"); raw != "" {
		asOf, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid active_on date"})
			return
		}
		occupancies, err = h.tenancy.ListActiveOccupancies(r.Context(), actorID(r), pathSlug(r), asOf)
	} else {
		occupancies, err = h.tenancy.ListOccupancies(r.Context(), actorID(r), pathSlug(r))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, occupancies)
}
