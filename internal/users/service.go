package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrivera-dev/carvalue-backend/pkg/config"
	"github.com/mrivera-dev/carvalue-backend/pkg/db"
	dbmodels "github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	pkgerrors "github.com/mrivera-dev/carvalue-backend/pkg/errors"
	"github.com/mrivera-dev/carvalue-backend/pkg/security"
	"gorm.io/gorm"
)

const userNotFoundMessage = "user not found"

// Service defines the behavior needed by the users controller.
type Service interface {
	Get(ctx context.Context, id uint) (*UserDTO, error)
	List(ctx context.Context, query ListQuery) ([]UserDTO, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*UserDTO, error)
	Remove(ctx context.Context, id uint) error
}

type service struct {
	users       userRepository
	passwordCfg config.PasswordConfig
}

type userRepository interface {
	FindByID(ctx context.Context, id uint) (*dbmodels.User, error)
	List(ctx context.Context, query ListQuery) ([]dbmodels.User, error)
	Update(ctx context.Context, id uint, changes map[string]any) (*dbmodels.User, error)
	Delete(ctx context.Context, id uint) error
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	UserRepo       userRepository
	PasswordConfig config.PasswordConfig
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       params.UserRepo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]UserDTO, error) {
	query.Email = normalizeEmail(query.Email)
	rows, err := s.users.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}

	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateUserInput) (*UserDTO, error) {
	changes := map[string]any{}
	if input.Email != nil {
		changes["email"] = normalizeEmail(*input.Email)
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		changes["password_hash"] = hash
	}

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		case db.IsUniqueViolation(err, "idx_users_email"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
		}
	}
	return FromModel(user), nil
}

func (s *service) Remove(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, userNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
