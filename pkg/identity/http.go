package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/auth"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const ssoStateCookie = "nurobeats_sso_state"

type Handler struct {
	service *Service
	oidc    *auth.OIDCAuthenticator
}

// NewHandler wires the identity routes. oidc may be nil when no provider is
// configured; the SSO routes then respond 404.
func NewHandler(service *Service, oidc *auth.OIDCAuthenticator) *Handler {
	return &Handler{service: service, oidc: oidc}
}

// Register mounts credential routes on the public router and the self view
// on the authenticated router.
func (h *Handler) Register(public, protected *mux.Router) {
	public.HandleFunc("/auth/register", h.handleRegister).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	if h.oidc != nil {
		public.HandleFunc("/auth/sso/login", h.handleSSOLogin).Methods(http.MethodGet)
		public.HandleFunc("/auth/sso/callback", h.handleSSOCallback).Methods(http.MethodGet)
	}
	protected.HandleFunc("/auth/me", h.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/auth/refresh", h.handleRefresh).Methods(http.MethodPost)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err, "failed to register")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		writeError(w, err, "failed to log in")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Me(r.Context(), middleware.ActorFromRequest(r))
	if err != nil {
		writeError(w, err, "failed to load account")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Refresh(r.Context(), middleware.ActorFromRequest(r))
	if err != nil {
		writeError(w, err, "failed to refresh token")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ssoStateCookie,
		Value:    state,
		Path:     "/auth/sso",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.oidc.AuthCodeURL(state), http.StatusFound)
}

func (h *Handler) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(ssoStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}

	token, err := h.oidc.Exchange(r.Context(), code)
	if err != nil {
		logger.Log.WithError(err).Warn("SSO code exchange failed")
		http.Error(w, "sso exchange failed", http.StatusUnauthorized)
		return
	}
	info, err := h.oidc.FetchUserInfo(r.Context(), token)
	if err != nil {
		logger.Log.WithError(err).Warn("SSO userinfo fetch failed")
		http.Error(w, "sso userinfo failed", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.LoginSSO(r.Context(), info)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			http.Error(w, "no account for this identity", http.StatusForbidden)
			return
		}
		writeError(w, err, "failed to complete sso login")
		return
	}
	writeJSON(w, http.StatusOK, resp)
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
