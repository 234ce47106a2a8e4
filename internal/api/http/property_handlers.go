package httpapi

import (
	"net/http"

	"renttrack-backend/internal/domain"
)

func (h *Handler) createBuilding(w http.ResponseWriter, r *http.Request) {
	var b domain.Building
	if !decodeBody(w, r, &b) {
		return
	}
	if err := h.property.CreateBuilding(r.Context(), actorID(r), pathSlug(r), &b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) updateBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var b domain.Building
	if !decodeBody(w, r, &b) {
		return
	}
	b.ID = id
	if err := h.property.UpdateBuilding(r.Context(), actorID(r), pathSlug(r), &b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) deleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.property.DeleteBuilding(r.Context(), actorID(r), pathSlug(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.property.ListBuildings(r.Context(), actorID(r), pathSlug(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildings)
}

func (h *Handler) createUnit(w http.ResponseWriter, r *http.Request) {
	var u domain.Unit
	if !decodeBody(w, r, &u) {
		return
	}
	if err := h.property.CreateUnit(r.Context(), actorID(r), pathSlug(r), &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) updateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var u domain.Unit
	if !decodeBody(w, r, &u) {
		return
	}
	u.ID = id
	if err := h.property.UpdateUnit(r.Context(), actorID(r), pathSlug(r), &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) deleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.property.DeleteUnit(r.Context(), actorID(r), pathSlug(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	units, err := h.property.ListUnits(r.Context(), actorID(r), pathSlug(r), buildingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}
