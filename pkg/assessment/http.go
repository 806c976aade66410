package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.HandleFunc("/assessments", h.handleRecord).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}/assessments", h.handleList).Methods(http.MethodGet)
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.service.RecordAssessment(r.Context(), middleware.ActorFromRequest(r), req)
	if err != nil {
		writeError(w, err, "failed to record assessment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"assessment": created})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	items, err := h.service.ListAssessments(r.Context(), middleware.ActorFromRequest(r), patientID)
	if err != nil {
		writeError(w, err, "failed to list assessments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, ErrUnknownType) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
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
