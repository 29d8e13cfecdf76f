package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "app-session"

	keyUserID   = "user_id"
	keyQuizKey  = "quiz_key"
	keyLastSeen = "last_seen"
)

const (
	FlashSuccess = "alert-success"
	FlashDanger  = "alert-danger"
)

type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// Identity is what an authenticated cookie session carries.
type Identity struct {
	UserID  int
	QuizKey string
}

// Store keeps the login state in a signed cookie. A session idle for
// longer than ttl counts as logged out.
type Store struct {
	cookies *sessions.CookieStore
	ttl     time.Duration
	now     func() time.Time
}

func NewStore(key []byte, ttl time.Duration, secure bool) *Store {
	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{
		cookies: cookies,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) get(r *http.Request) *sessions.Session {
	// a cookie that fails verification still yields a fresh, usable session
	sess, _ := s.cookies.Get(r, cookieName)
	return sess
}

// Login binds userID to the cookie session and issues a new quiz key.
func (s *Store) Login(w http.ResponseWriter, r *http.Request, userID int, flashes ...Flash) (Identity, error) {
	sess := s.get(r)
	id := Identity{UserID: userID, QuizKey: uuid.NewString()}

	sess.Values[keyUserID] = id.UserID
	sess.Values[keyQuizKey] = id.QuizKey
	sess.Values[keyLastSeen] = s.now().Unix()
	for _, f := range flashes {
		sess.AddFlash(f)
	}

	return id, sess.Save(r, w)
}

// Current returns the identity of an authenticated, non-idle session.
func (s *Store) Current(r *http.Request) (Identity, bool) {
	sess := s.get(r)

	userID, ok := sess.Values[keyUserID].(int)
	if !ok || userID <= 0 {
		return Identity{}, false
	}
	quizKey, ok := sess.Values[keyQuizKey].(string)
	if !ok || quizKey == "" {
		return Identity{}, false
	}
	lastSeen, ok := sess.Values[keyLastSeen].(int64)
	if !ok || s.now().Sub(time.Unix(lastSeen, 0)) > s.ttl {
		return Identity{}, false
	}

	return Identity{UserID: userID, QuizKey: quizKey}, true
}

// Touch slides the inactivity window.
func (s *Store) Touch(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	sess.Values[keyLastSeen] = s.now().Unix()
	return sess.Save(r, w)
}

// Logout forgets the identity but keeps the cookie so flashes survive the
// redirect.
func (s *Store) Logout(w http.ResponseWriter, r *http.Request, flashes ...Flash) error {
	sess := s.get(r)
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyQuizKey)
	delete(sess.Values, keyLastSeen)
	for _, f := range flashes {
		sess.AddFlash(f)
	}
	return sess.Save(r, w)
}

func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	sess := s.get(r)
	sess.AddFlash(Flash{Kind: kind, Message: message})
	return sess.Save(r, w)
}

// Flashes pops every pending flash message.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := s.get(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
