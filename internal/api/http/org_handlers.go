package httpapi

import (
	"net/http"

	"renttrack-backend/internal/domain"
)

type createOrgRequest struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
	AdminEmail   string `json:"admin_email"`
}

func (h *Handler) createOrg(w http.ResponseWriter, r *http.Request) {
	var req createOrgRequest
	if !decodeBody(w, r, &req) {
		return
	}

	org, err := h.orgs.Create(r.Context(), actorID(r), req.Slug, req.Name, req.CurrencyCode, req.AdminEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (h *Handler) getOrg(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgs.Get(r.Context(), actorID(r), pathSlug(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *Handler) changeCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrencyCode string `json:"currency_code"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	org, err := h.orgs.ChangeCurrency(r.Context(), actorID(r), pathSlug(r), req.CurrencyCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int32                 `json:"user_id"`
		Role   domain.MembershipRole `json:"role"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.orgs.AddMember(r.Context(), actorID(r), pathSlug(r), req.UserID, req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}

func (h *Handler) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var req struct {
		Role domain.MembershipRole `json:"role"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.orgs.UpdateMemberRole(r.Context(), actorID(r), pathSlug(r), userID, req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := h.orgs.RemoveMember(r.Context(), actorID(r), pathSlug(r), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.orgs.ListMembers(r.Context(), actorID(r), pathSlug(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type auditLogListResponse struct {
	Entries  []domain.AuditLog `json:"entries"`
	Total    int32             `json:"total"`
	Page     int32             `json:"page"`
	PageSize int32             `json:"page_size"`
}

func (h *Handler) listAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	pageSize := queryInt(q.Get("page_size"), 20)

	entries, total, err := h.orgs.ListAuditLog(r.Context(), actorID(r), pathSlug(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auditLogListResponse{Entries: entries, Total: total, Page: page, PageSize: pageSize})
}
