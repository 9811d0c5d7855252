package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kegiatan-kampus/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", service.Invalid("missing required fields: name"), http.StatusBadRequest, "missing required fields: name"},
		{"conflict", service.ErrAlreadyEnrolled, http.StatusBadRequest, "already enrolled"},
		{"not found", service.ErrActivityNotFound, http.StatusBadRequest, "activity not found"},
		{"auth", service.ErrWrongPassword, http.StatusBadRequest, "wrong password"},
		{"deadline", service.ErrRegistrationClosed, http.StatusBadRequest, "registration closed"},
		{"wrapped", fmt.Errorf("enroll: %w", service.ErrRegistrationClosed), http.StatusBadRequest, "registration closed"},
		{"unauthorized", service.ErrNoSession, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", service.ErrStudentsOnly, http.StatusForbidden, "only students may enroll"},
		{"infra", errors.New("connection refused"), http.StatusInternalServerError, "server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Error(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestData(t *testing.T) {
	w := httptest.NewRecorder()
	Data(w, "kegiatan", []string{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"kegiatan":[]}`, w.Body.String())
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, Decode(httptest.NewRecorder(), r, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.ErrorIs(t, Decode(httptest.NewRecorder(), r, &v), service.ErrValidation)
}
