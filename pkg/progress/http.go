package progress

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
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
	r.HandleFunc("/patients/{id}/progress", h.handleReport).Methods(http.MethodGet)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	windowDays := parseWindowDays(r)
	report, err := h.service.Report(r.Context(), middleware.ActorFromRequest(r), patientID, windowDays)
	if err != nil {
		status := errs.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			logger.Log.WithError(err).Error("failed to build progress report")
			http.Error(w, "failed to build progress report", status)
			return
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func parseWindowDays(r *http.Request) int {
	raw := r.URL.Query().Get("window_days")
	if raw == "" {
		return DefaultWindowDays
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		return v
	}
	return DefaultWindowDays
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
