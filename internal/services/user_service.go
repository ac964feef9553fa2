package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/patch"
	"github.com/trackr/api/internal/query"
	"github.com/trackr/api/internal/repository"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	PaginateUsers(ctx context.Context, p query.Params, f repository.UserFilter) (query.Page[models.User], error)
	RoleStats(ctx context.Context) (*RoleStats, error)
	UpdateUser(ctx context.Context, actor *models.User, id uuid.UUID, input *UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, id uuid.UUID) error
}

// UpdateUserInput lists the fields a caller wants changed. Absent fields are
// left alone; Name and Role may be cleared with null.
type UpdateUserInput struct {
	Name     patch.Field[string]
	Email    patch.Field[string]
	Password patch.Field[string]
	Role     patch.Field[models.Role]
}

type RoleStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	Users           int64 `json:"users"`
	ProjectManagers int64 `json:"projectManagers"`
	Admins          int64 `json:"admins"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

var _ UserService = (*userService)(nil)

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.userRepo.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx, "created_at DESC")
}

func (s *userService) PaginateUsers(ctx context.Context, p query.Params, f repository.UserFilter) (query.Page[models.User], error) {
	return s.userRepo.Paginate(ctx, p, f)
}

func (s *userService) RoleStats(ctx context.Context) (*RoleStats, error) {
	counts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	st := &RoleStats{
		Users:           counts[models.RoleUser],
		ProjectManagers: counts[models.RoleProjectManager],
		Admins:          counts[models.RoleAdmin],
	}
	for _, n := range counts {
		st.TotalUsers += n
	}
	return st, nil
}

// UpdateUser lets users edit themselves and admins edit anyone. Only admins
// may change roles.
func (s *userService) UpdateUser(ctx context.Context, actor *models.User, id uuid.UUID, input *UpdateUserInput) (*models.User, error) {
	isAdmin := actor.EffectiveRole() == models.RoleAdmin
	if actor == nil || (actor.ID != id && !isAdmin) {
		return nil, appErr.New(appErr.CodeForbidden, "cannot update another user")
	}
	if input.Role.Set && !isAdmin {
		return nil, appErr.New(appErr.CodeForbidden, "only admins can change roles")
	}

	var u models.User
	if err := s.userRepo.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}

	if input.Name.Set {
		u.Name = input.Name.Ptr()
	}
	if input.Email.Set {
		if !input.Email.HasValue() || NormalizeEmail(input.Email.Value) == "" {
			return nil, appErr.New(appErr.CodeInvalid, "email cannot be cleared")
		}
		email := NormalizeEmail(input.Email.Value)
		if u.Email == nil || *u.Email != email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, emailTaken()
			}
		}
		u.Email = &email
	}
	if input.Password.Set {
		if !input.Password.HasValue() || input.Password.Value == "" {
			return nil, appErr.New(appErr.CodeInvalid, "password cannot be empty")
		}
		salt, err := auth.NewSalt()
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "generate salt failed")
		}
		hash, err := auth.HashPassword(input.Password.Value, salt)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "password cannot be hashed")
		}
		u.Salt, u.PasswordHash = salt, hash
	}
	if input.Role.Set {
		if input.Role.HasValue() && !input.Role.Value.Valid() {
			return nil, appErr.Newf(appErr.CodeInvalid, "invalid role %d", int(input.Role.Value))
		}
		u.Role = input.Role.Ptr()
	}

	if err := s.userRepo.Update(ctx, &u); err != nil {
		return nil, err
	}
	logger.L().Info("user updated",
		zap.String("user_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.Bool("password_changed", input.Password.Set),
	)
	return &u, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if actor.EffectiveRole() != models.RoleAdmin {
		return appErr.New(appErr.CodeForbidden, "only admins can delete users")
	}
	if actor.ID == id {
		return appErr.New(appErr.CodeInvalid, "admins cannot delete themselves")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("user deleted", zap.String("user_id", id.String()), zap.String("actor_id", actor.ID.String()))
	return nil
}
