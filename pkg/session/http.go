package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Aditya-J07/Nuro-Beats/pkg/beat"
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
	r.HandleFunc("/sessions", h.handleStart).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/metrics", h.handleRecordSample).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/metrics", h.handleListMetrics).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/complete", h.handleComplete).Methods(http.MethodPut)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.service.Start(r.Context(), middleware.ActorFromRequest(r), req)
	if err != nil {
		writeError(w, err, "failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": created})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	sess, err := h.service.Get(r.Context(), middleware.ActorFromRequest(r), id)
	if err != nil {
		writeError(w, err, "failed to get session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"session": sess})
}

func (h *Handler) handleRecordSample(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	var req models.RecordSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.service.RecordSample(r.Context(), middleware.ActorFromRequest(r), id, req)
	if err != nil {
		writeError(w, err, "failed to record sample")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	metrics, err := h.service.Metrics(r.Context(), middleware.ActorFromRequest(r), id)
	if err != nil {
		writeError(w, err, "failed to list metrics")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": metrics})
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	var req models.CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	completed, err := h.service.Complete(r.Context(), middleware.ActorFromRequest(r), id, req)
	if err != nil {
		writeError(w, err, "failed to complete session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"session": completed})
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	var pref beat.InvalidPreferenceError
	if errors.As(err, &pref) {
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
