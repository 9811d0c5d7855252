package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kegiatan-kampus/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestTraceID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(TraceParentHeader, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	r.Header.Set(TraceIDHeader, "ignored")
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", TraceID(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(TraceIDHeader, "abc")
	assert.Equal(t, "abc", TraceID(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Len(t, TraceID(r), 32)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodGet, "/kegiatan", nil)
	r.Header.Set(TraceIDHeader, "trace-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "trace-1", w.Header().Get(TraceIDHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, access map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &access))

	assert.Equal(t, "trace-1", inside["trace_id"])
	assert.Equal(t, "trace-1", access["trace_id"])
	assert.Equal(t, "/kegiatan", access["path"])
	assert.Equal(t, float64(http.StatusTeapot), access["status"])
	assert.Equal(t, "warn", access["level"])
}

func TestGate(t *testing.T) {
	student := &models.SessionUser{ID: 1, Username: "alice", Role: models.RoleStudent}
	admin := &models.SessionUser{ID: 2, Username: "root", Role: models.RoleAdmin}
	adminOnly := Chain(okHandler, RequireLogin, RequireRole(models.RoleAdmin))

	tests := []struct {
		name string
		user *models.SessionUser
		want int
	}{
		{"no session", nil, http.StatusUnauthorized},
		{"wrong role", student, http.StatusForbidden},
		{"right role", admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/kegiatan", nil)
			if tt.user != nil {
				r = r.WithContext(WithUser(r.Context(), tt.user))
			}
			w := httptest.NewRecorder()
			adminOnly.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)

			if tt.want != http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
			}
		})
	}

	t.Run("role alone without session is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireRole(models.RoleAdmin)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler, mark("a"), mark("b"), mark("c")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}
