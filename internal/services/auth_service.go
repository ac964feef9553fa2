package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/trackr/api/internal/auth"
	"github.com/trackr/api/internal/models"
	"github.com/trackr/api/internal/repository"
	appErr "github.com/trackr/api/pkg/errors"
	"github.com/trackr/api/pkg/logger"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, actor *models.User, input *RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Principal(ctx context.Context, token string) (*models.User, error)
}

type RegisterInput struct {
	Name     *string
	Email    string
	Password string
	Role     *models.Role
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

var _ AuthService = (*authService)(nil)

// ErrEmailTaken is wrapped by the invalid error returned when an email is
// already registered.
var ErrEmailTaken = errors.New("email already registered")

func emailTaken() error {
	return appErr.Wrap(ErrEmailTaken, appErr.CodeInvalid, "User with provided email already exists")
}

// NormalizeEmail is applied to every email before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. Only an authenticated admin may assign a role
// other than User.
func (s *authService) Register(ctx context.Context, actor *models.User, input *RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if input.Role != nil && *input.Role != models.RoleUser && actor.EffectiveRole() != models.RoleAdmin {
		return nil, appErr.New(appErr.CodeForbidden, "only admins can assign elevated roles")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, emailTaken()
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "generate salt failed")
	}
	hash, err := auth.HashPassword(input.Password, salt)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "password cannot be hashed")
	}

	role := models.RoleUser
	if input.Role != nil {
		role = *input.Role
	}
	user := &models.User{
		Name:         input.Name,
		Email:        &email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         &role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.L().Info("user registered", zap.String("user_id", user.ID.String()), zap.Stringer("role", role))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email), &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.Salt) {
		logger.L().Info("login rejected", zap.String("user_id", user.ID.String()))
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "issue token failed")
	}

	logger.L().Info("user logged in", zap.String("user_id", user.ID.String()))
	return token, &user, nil
}

// Principal resolves a bearer token to the user it was issued for.
func (s *authService) Principal(ctx context.Context, token string) (*models.User, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return nil, appErr.New(appErr.CodeUnauthorized, "invalid token")
	}
	var user models.User
	if err := s.userRepo.GetByID(ctx, id, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeUnauthorized, "unknown token subject")
		}
		return nil, err
	}
	return &user, nil
}

func ensureID(id uuid.UUID, what string) error {
	if id == uuid.Nil {
		return appErr.Newf(appErr.CodeInvalid, "%s id is required", what)
	}
	return nil
}
