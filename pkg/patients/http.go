package patients

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/patients", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/patients", h.handleListAssigned).Methods(http.MethodGet)
	r.HandleFunc("/patients/unassigned", h.handleListUnassigned).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}", h.handleDetail).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}/audit", h.handleAuditTrail).Methods(http.MethodGet)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	summary, err := h.service.CreatePatient(r.Context(), middleware.ActorFromRequest(r), req)
	if err != nil {
		writeError(w, err, "failed to create patient")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"patient": summary})
}

func (h *Handler) handleListAssigned(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAssigned(r.Context(), middleware.ActorFromRequest(r))
	if err != nil {
		writeError(w, err, "failed to list patients")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) handleListUnassigned(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListUnassigned(r.Context(), middleware.ActorFromRequest(r))
	if err != nil {
		writeError(w, err, "failed to list unassigned patients")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	detail, err := h.service.Detail(r.Context(), middleware.ActorFromRequest(r), patientID)
	if err != nil {
		writeError(w, err, "failed to get patient")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	limit := parseLimit(r, 50)
	items, err := h.service.AuditTrail(r.Context(), middleware.ActorFromRequest(r), patientID, limit)
	if err != nil {
		writeError(w, err, "failed to list audit trail")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error(fallback)
		http.Error(w, fallback, status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
