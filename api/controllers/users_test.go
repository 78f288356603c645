package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrivera-dev/carvalue-backend/internal/users"
	pkgerrors "github.com/mrivera-dev/carvalue-backend/pkg/errors"
)

type stubUsersService struct {
	user *users.UserDTO
	list []users.UserDTO
	err  error

	lastQuery  users.ListQuery
	lastUpdate users.UpdateUserInput
	removedID  uint
}

func (s *stubUsersService) Get(ctx context.Context, id uint) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUsersService) List(ctx context.Context, query users.ListQuery) ([]users.UserDTO, error) {
	s.lastQuery = query
	return s.list, s.err
}

func (s *stubUsersService) Update(ctx context.Context, id uint, input users.UpdateUserInput) (*users.UserDTO, error) {
	s.lastUpdate = input
	return s.user, s.err
}

func (s *stubUsersService) Remove(ctx context.Context, id uint) error {
	s.removedID = id
	return s.err
}

func TestUserGet(t *testing.T) {
	svc := &stubUsersService{user: &users.UserDTO{ID: 2, Email: "driver@example.com"}}
	handler := UserGet(svc, nil)

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/auth/2", nil), "id", "2")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 2 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestUserGetBadID(t *testing.T) {
	handler := UserGet(&stubUsersService{}, nil)

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/auth/abc", nil), "id", "abc")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUserGetMissing(t *testing.T) {
	svc := &stubUsersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := UserGet(svc, nil)

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/auth/99", nil), "id", "99")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestUserListFiltersByEmail(t *testing.T) {
	svc := &stubUsersService{list: []users.UserDTO{{ID: 1, Email: "driver@example.com"}}}
	handler := UserList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth?email=driver@example.com&limit=10", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.Email != "driver@example.com" || svc.lastQuery.Limit != 10 {
		t.Fatalf("unexpected query: %+v", svc.lastQuery)
	}
}

func TestUserUpdate(t *testing.T) {
	svc := &stubUsersService{user: &users.UserDTO{ID: 2, Email: "fresh@example.com"}}
	handler := UserUpdate(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/auth/2", bytes.NewReader([]byte(`{"email":"fresh@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withChiParam(req, "id", "2")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastUpdate.Email == nil || *svc.lastUpdate.Email != "fresh@example.com" {
		t.Fatalf("expected email update, got %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Password != nil {
		t.Fatalf("password must stay untouched when absent")
	}
}

func TestUserUpdateRejectsUnknownFields(t *testing.T) {
	handler := UserUpdate(&stubUsersService{}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/auth/2", bytes.NewReader([]byte(`{"admin":true}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withChiParam(req, "id", "2")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUserDelete(t *testing.T) {
	svc := &stubUsersService{}
	handler := UserDelete(svc, nil)

	req := withChiParam(httptest.NewRequest(http.MethodDelete, "/auth/3", nil), "id", "3")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if svc.removedID != 3 {
		t.Fatalf("expected removal of user 3, got %d", svc.removedID)
	}
}
