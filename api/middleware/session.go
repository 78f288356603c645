package middleware

import (
	"context"
	"net/http"

	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	"github.com/mrivera-dev/carvalue-backend/pkg/logger"
)

type sessionReader interface {
	Read(r *http.Request) (uint, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Session resolves the session cookie into the current user. Requests with
// no cookie, a bad cookie, or a deleted user proceed anonymously; the
// guards decide whether that is acceptable.
func Session(sessions sessionReader, users userLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := sessions.Read(r)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "session.rejected")
				}
				next.ServeHTTP(w, r)
				return
			}
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithSessionUserID(ctx, userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
			}

			if users != nil {
				if user, err := users.FindByID(ctx, userID); err == nil {
					ctx = WithCurrentUser(ctx, user)
				} else if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "session.user_missing")
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
