package handlers

import (
	"net/http"
	"strconv"

	"kegiatan-kampus/internal/http/middleware"
	"kegiatan-kampus/internal/http/respond"
	"kegiatan-kampus/internal/logging"
	"kegiatan-kampus/internal/metrics"
	"kegiatan-kampus/internal/models"
	"kegiatan-kampus/internal/service"
)

type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
	metrics     *metrics.Metrics
}

func NewEnrollmentHandler(enrollments *service.EnrollmentService, m *metrics.Metrics) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		metrics:     m,
	}
}

// Enroll registers the logged-in student for an activity.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, r, service.ErrNoSession)
		return
	}
	if user.Role != models.RoleStudent {
		h.metrics.RecordEnrollment(resultOf(service.ErrStudentsOnly))
		respond.Error(w, r, service.ErrStudentsOnly)
		return
	}

	var req service.EnrollRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.metrics.RecordEnrollment(resultOf(err))
		respond.Error(w, r, err)
		return
	}

	enrollment, err := h.enrollments.Enroll(r.Context(), *user, req)
	h.metrics.RecordEnrollment(resultOf(err))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info().
		Int64("user_id", user.ID).
		Int64("activity_id", enrollment.ActivityID).
		Msg("Enrollment successful")
	respond.OK(w, "enrollment successful")
}

// ListForAdmin lists enrollments, filtered by the activity_id query
// parameter when present.
func (h *EnrollmentHandler) ListForAdmin(w http.ResponseWriter, r *http.Request) {
	var activityID int64
	if raw := r.URL.Query().Get("activity_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respond.Error(w, r, service.Invalid("invalid activity id"))
			return
		}
		activityID = id
	}

	views, err := h.enrollments.ListForAdmin(r.Context(), activityID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, "pendaftar", views)
}

func (h *EnrollmentHandler) ListForStudent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, r, service.ErrNoSession)
		return
	}

	views, err := h.enrollments.ListForStudent(r.Context(), *user)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, "daftar", views)
}
