package handlers

import (
	"net/http"
	"strconv"

	"kegiatan-kampus/internal/http/respond"
	"kegiatan-kampus/internal/service"

	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	activities *service.ActivityService
}

func NewActivityHandler(activities *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, "kegiatan", activities)
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := activityID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	activity, err := h.activities.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Data(w, "kegiatan", activity)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ActivityRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if _, err := h.activities.Create(r.Context(), req); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, "activity created")
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := activityID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req service.ActivityRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if _, err := h.activities.Update(r.Context(), id, req); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, "activity updated")
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := activityID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.activities.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, "activity deleted")
}

func activityID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, service.Invalid("invalid activity id")
	}
	return id, nil
}
