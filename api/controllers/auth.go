package controllers

import (
	"net/http"

	"github.com/mrivera-dev/carvalue-backend/api/middleware"
	"github.com/mrivera-dev/carvalue-backend/api/responses"
	"github.com/mrivera-dev/carvalue-backend/api/validators"
	"github.com/mrivera-dev/carvalue-backend/internal/auth"
	"github.com/mrivera-dev/carvalue-backend/internal/users"
	pkgerrors "github.com/mrivera-dev/carvalue-backend/pkg/errors"
	"github.com/mrivera-dev/carvalue-backend/pkg/logger"
	"github.com/mrivera-dev/carvalue-backend/pkg/session"
)

// AuthSignup registers a new account and opens a session for it.
func AuthSignup(svc auth.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || sessions == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Signup(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sessions.Issue(w, user.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AuthSignin verifies credentials and opens a session.
func AuthSignin(svc auth.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || sessions == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.SigninRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Signin(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sessions.Issue(w, user.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session"))
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AuthSignout clears the session cookie.
func AuthSignout(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessions.Clear(w)
		responses.WriteNoContent(w)
	}
}

// AuthWhoAmI returns the signed-in user.
func AuthWhoAmI(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUserFromContext(r.Context())
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in"))
			return
		}
		responses.WriteSuccess(w, users.FromModel(user))
	}
}
