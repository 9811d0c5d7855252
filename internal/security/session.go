package security

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/models"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	SessionName   = "kegiatan_session"
	SessionMaxAge = 24 * time.Hour

	keyUserID   = "user_id"
	keyUsername = "username"
	keyEmail    = "email"
	keyRole     = "role"
)

// SessionRepository is the storage the session store needs.
type SessionRepository interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSessionData(ctx context.Context, id, data string) error
	DeleteSession(ctx context.Context, id string) error
}

// DBStore is a sessions.Store that keeps session values server side. The
// cookie only carries the signed session id. A session expires a fixed
// duration after it was created and is never extended.
type DBStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options
	repo    SessionRepository
	now     func() time.Time
}

func NewDBStore(repo SessionRepository, secure bool, keyPairs ...[]byte) *DBStore {
	maxAge := int(SessionMaxAge / time.Second)
	codecs := securecookie.CodecsFromPairs(keyPairs...)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(maxAge)
		}
	}

	return &DBStore{
		Codecs: codecs,
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		},
		repo: repo,
		now:  time.Now,
	}
}

func (s *DBStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *DBStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, nil
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	session.IsNew = !found
	return session, nil
}

func (s *DBStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.repo.DeleteSession(ctx, session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	data, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return err
	}

	if session.ID == "" || session.IsNew {
		session.ID = newSessionID()
		row := &models.Session{
			ID:        session.ID,
			Data:      data,
			ExpiresAt: s.now().Add(SessionMaxAge),
		}
		if err := s.repo.CreateSession(ctx, row); err != nil {
			return err
		}
		session.IsNew = false
	} else if err := s.repo.UpdateSessionData(ctx, session.ID, data); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *DBStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	row, err := s.repo.GetSession(ctx, session.ID)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if row.Expired(s.now()) {
		return false, s.repo.DeleteSession(ctx, row.ID)
	}

	if err := securecookie.DecodeMulti(session.Name(), row.Data, &session.Values, s.Codecs...); err != nil {
		return false, nil
	}
	return true, nil
}

func newSessionID() string {
	return strings.TrimRight(
		base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
}

// SessionManager binds authenticated users to requests through a
// sessions.Store.
type SessionManager struct {
	store sessions.Store
	name  string
}

func NewSessionManager(store sessions.Store) *SessionManager {
	return &SessionManager{store: store, name: SessionName}
}

// Current returns the user stored in the request's session, or nil when the
// request carries no live session.
func (m *SessionManager) Current(r *http.Request) (*models.SessionUser, error) {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.IsNew {
		return nil, nil
	}

	id, ok := session.Values[keyUserID].(int64)
	if !ok {
		return nil, nil
	}
	username, _ := session.Values[keyUsername].(string)
	email, _ := session.Values[keyEmail].(string)
	role, _ := session.Values[keyRole].(string)

	return &models.SessionUser{ID: id, Username: username, Email: email, Role: role}, nil
}

func (m *SessionManager) Establish(w http.ResponseWriter, r *http.Request, user models.SessionUser) error {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	// A login never inherits a previous session id.
	if !session.IsNew && session.ID != "" {
		maxAge := session.Options.MaxAge
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			return err
		}
		session.Options.MaxAge = maxAge
	}

	session.ID = ""
	session.IsNew = true
	session.Values = map[interface{}]interface{}{
		keyUserID:   user.ID,
		keyUsername: user.Username,
		keyEmail:    user.Email,
		keyRole:     user.Role,
	}
	return session.Save(r, w)
}

// Destroy removes the request's session. It is a no-op without one.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Options.MaxAge = -1
	if session.IsNew {
		session.ID = ""
	}
	return session.Save(r, w)
}
