package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"quizgame/internal/session"
)

func TestRequireAuth(t *testing.T) {
	store := session.NewStore(securecookie.GenerateRandomKey(32), 30*time.Minute, false)

	var seen session.Identity
	protected := RequireAuth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("public path passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reset_password/abc", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("unknown path passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("anonymous is redirected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/question", nil))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Errorf("status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
		}
	})

	t.Run("logged in passes with identity", func(t *testing.T) {
		loginRec := httptest.NewRecorder()
		id, err := store.Login(loginRec, httptest.NewRequest(http.MethodPost, "/", nil), 9)
		if err != nil {
			t.Fatalf("Login: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/quiz", nil)
		for _, c := range loginRec.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if seen != id {
			t.Errorf("identity = %+v, want %+v", seen, id)
		}
	})
}

func TestRecover(t *testing.T) {
	h := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		Logging(zap.NewNop()),
		Recover(zap.NewNop()),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
