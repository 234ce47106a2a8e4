package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"renttrack-backend/internal/security"
	"renttrack-backend/internal/service"
)

// Handler carries the service layer into the HTTP handlers.
type Handler struct {
	auth     service.AuthService
	orgs     service.OrganizationService
	property service.PropertyService
	tenancy  service.TenancyService
	configs  service.RentConfigService
	periods  service.RentPeriodService
	payments service.PaymentService
}

func NewHandler(
	auth service.AuthService,
	orgs service.OrganizationService,
	property service.PropertyService,
	tenancy service.TenancyService,
	configs service.RentConfigService,
	periods service.RentPeriodService,
	payments service.PaymentService,
) *Handler {
	return &Handler{
		auth:     auth,
		orgs:     orgs,
		property: property,
		tenancy:  tenancy,
		configs:  configs,
		periods:  periods,
		payments: payments,
	}
}

// NewRouter builds the full route table. Everything under /orgs requires a
// valid access token; org-level authorization happens in the service layer.
func NewRouter(h *Handler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.refresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(tokens))

	authed.HandleFunc("/orgs", h.createOrg).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}", h.getOrg).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{slug}/currency", h.changeCurrency).Methods(http.MethodPatch)
	authed.HandleFunc("/orgs/{slug}/members", h.addMember).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/members", h.listMembers).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{slug}/members/{id}", h.updateMemberRole).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/members/{id}", h.removeMember).Methods(http.MethodDelete)
	authed.HandleFunc("/orgs/{slug}/audit-logs", h.listAuditLog).Methods(http.MethodGet)

	authed.HandleFunc("/orgs/{slug}/buildings", h.createBuilding).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/buildings", h.listBuildings).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{slug}/buildings/{id}", h.updateBuilding).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/buildings/{id}", h.deleteBuilding).Methods(http.MethodDelete)
	authed.HandleFunc("/orgs/{slug}/buildings/{id}/units", h.listUnits).Methods(http.MethodGet)

	authed.HandleFunc("/orgs/{slug}/units", h.createUnit).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/units/{id}", h.updateUnit).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/units/{id}", h.deleteUnit).Methods(http.MethodDelete)

	authed.HandleFunc("/orgs/{slug}/tenants", h.createTenant).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/tenants", h.listTenants).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{slug}/tenants/{id}", h.updateTenant).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/tenants/{id}", h.deleteTenant).Methods(http.MethodDelete)

	authed.HandleFunc("/orgs/{slug}/occupancies", h.createOccupancy).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/occupancies", h.listOccupancies).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{slug}/occupancies/{id}", h.updateOccupancy).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/occupancies/{id}", h.deleteOccupancy).Methods(http.MethodDelete)
	authed.HandleFunc("/orgs/{slug}/occupancies/{id}/rent-configs", h.listRentConfigs).Methods(http.MethodGet)

	authed.HandleFunc("/orgs/{slug}/rent-configs", h.createRentConfig).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/rent-configs/{id}", h.updateRentConfig).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/rent-configs/{id}", h.deleteRentConfig).Methods(http.MethodDelete)
	authed.HandleFunc("/orgs/{slug}/rent-configs/{id}/periods", h.generatePeriod).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/rent-configs/{id}/periods", h.listPeriodsByConfig).Methods(http.MethodGet)

	authed.HandleFunc("/orgs/{slug}/periods", h.listPeriods).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{slug}/periods/{id}", h.deletePeriod).Methods(http.MethodDelete)
	authed.HandleFunc("/orgs/{slug}/periods/{id}/status", h.changePeriodStatus).Methods(http.MethodPatch)
	authed.HandleFunc("/orgs/{slug}/periods/{id}/payments", h.createPayment).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{slug}/periods/{id}/payments", h.listPayments).Methods(http.MethodGet)

	authed.HandleFunc("/orgs/{slug}/payments/{id}", h.updatePayment).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{slug}/payments/{id}", h.deletePayment).Methods(http.MethodDelete)

	return r
}

func pathID(r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}
	return int32(id), true
}

func pathSlug(r *http.Request) string {
	return mux.Vars(r)["slug"]
}
