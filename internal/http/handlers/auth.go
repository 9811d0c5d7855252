package handlers

import (
	"errors"
	"net/http"

	"kegiatan-kampus/internal/http/middleware"
	"kegiatan-kampus/internal/http/respond"
	"kegiatan-kampus/internal/logging"
	"kegiatan-kampus/internal/metrics"
	"kegiatan-kampus/internal/security"
	"kegiatan-kampus/internal/service"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *security.SessionManager
	metrics  *metrics.Metrics
}

func NewAuthHandler(auth *service.AuthService, sessions *security.SessionManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		metrics:  m,
	}
}

// Register creates an account without logging it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.metrics.RecordRegistration(resultOf(err))
		respond.Error(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	h.metrics.RecordRegistration(resultOf(err))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().
		Int64("user_id", user.ID).
		Str("role", user.Role).
		Msg("Registration successful")
	respond.OK(w, "registration successful, please log in")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.metrics.RecordLogin(resultOf(err))
		respond.Error(w, r, err)
		return
	}

	user, err := h.auth.Login(r.Context(), req)
	h.metrics.RecordLogin(resultOf(err))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.sessions.Establish(w, r, *user); err != nil {
		respond.Error(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().Int64("user_id", user.ID).Msg("Login successful")
	respond.JSON(w, http.StatusOK, respond.Envelope{
		"success": true,
		"message": "login successful",
		"user":    user,
	})
}

// Logout always succeeds, with or without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).Msg("Session destroy failed")
	}
	respond.OK(w, "logout successful")
}

// Me returns the identity snapshot held by the session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, r, service.ErrNoSession)
		return
	}
	respond.Data(w, "user", user)
}

// resultOf labels an outcome for the business counters.
func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrAuth),
		errors.Is(err, service.ErrDeadline),
		errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrForbidden):
		return metrics.ResultFailure
	default:
		return metrics.ResultError
	}
}
