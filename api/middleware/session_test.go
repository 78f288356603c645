package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrivera-dev/carvalue-backend/pkg/config"
	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	"github.com/mrivera-dev/carvalue-backend/pkg/session"
	"gorm.io/gorm"
)

type stubUserLoader struct {
	users map[uint]*models.User
}

func (s stubUserLoader) FindByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func testSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "carvalue_session",
		TTLMinutes: 30,
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return mgr
}

func issueCookie(t *testing.T, mgr *session.Manager, userID uint) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := mgr.Issue(rec, userID); err != nil {
		t.Fatalf("issue session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}
	return cookies[0]
}

func TestSessionResolvesCurrentUser(t *testing.T) {
	mgr := testSessionManager(t)
	loader := stubUserLoader{users: map[uint]*models.User{
		12: {ID: 12, Email: "driver@example.com", Admin: true},
	}}

	var gotID uint
	var gotUser *models.User
	handler := Session(mgr, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = SessionUserIDFromContext(r.Context())
		gotUser = CurrentUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/whoami", nil)
	req.AddCookie(issueCookie(t, mgr, 12))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != 12 {
		t.Fatalf("expected session user 12, got %d", gotID)
	}
	if gotUser == nil || !gotUser.Admin {
		t.Fatalf("expected loaded admin user, got %+v", gotUser)
	}
}

func TestSessionMissingCookieStaysAnonymous(t *testing.T) {
	mgr := testSessionManager(t)
	loader := stubUserLoader{users: map[uint]*models.User{}}

	var gotID uint
	handler := Session(mgr, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = SessionUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotID != 0 {
		t.Fatalf("expected anonymous request, got user %d", gotID)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous requests must still reach the handler, got %d", rec.Code)
	}
}

func TestSessionTamperedCookieStaysAnonymous(t *testing.T) {
	mgr := testSessionManager(t)
	loader := stubUserLoader{users: map[uint]*models.User{}}

	var gotID uint
	handler := Session(mgr, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = SessionUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/whoami", nil)
	req.AddCookie(&http.Cookie{Name: mgr.CookieName(), Value: "not-a-token"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != 0 {
		t.Fatalf("expected tampered cookie to be ignored, got user %d", gotID)
	}
}

func TestSessionDeletedUserStaysAnonymousCurrentUser(t *testing.T) {
	mgr := testSessionManager(t)
	loader := stubUserLoader{users: map[uint]*models.User{}}

	var gotUser *models.User
	handler := Session(mgr, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = CurrentUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/whoami", nil)
	req.AddCookie(issueCookie(t, mgr, 44))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotUser != nil {
		t.Fatalf("expected nil current user for deleted account, got %+v", gotUser)
	}
}
