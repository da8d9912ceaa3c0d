package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farefinder/service-fares/internal/auth"
	"github.com/farefinder/service-fares/internal/domain"
	userDomain "github.com/farefinder/service-fares/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest holds the data needed to create a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest holds credentials for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest holds the data for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UserDTO is the response representation of an account.
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	HomeAddress string    `json:"home_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionDTO is the response for a successful register or login. The token
// is also set as an HTTP-only cookie by the handler.
type SessionDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

const minPasswordLength = 8

// AccountService is the application service for registration, login and
// credential management.
type AccountService struct {
	repo       userDomain.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo userDomain.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AccountService {
	return &AccountService{
		repo:       repo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a new account and returns a signed session.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*SessionDTO, error) {
	if len(req.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, domain.NewConflictError("an account with this email already exists")
	} else if err != nil {
		var appErr *domain.AppError
		if !errors.As(err, &appErr) || appErr.Code != domain.CodeNotFound {
			return nil, fmt.Errorf("failed to check existing account: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	usr, err := userDomain.NewUser(req.Email, string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, usr); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	token, err := s.jwtManager.GenerateSession(usr.ID(), usr.Email())
	if err != nil {
		return nil, domain.NewInternalError("failed to issue session", err)
	}

	s.logger.Info("account registered",
		zap.String("user_id", usr.ID().String()),
		zap.String("email", usr.Email()),
	)

	return &SessionDTO{Token: token, User: toUserDTO(usr)}, nil
}

// Login verifies credentials and returns a signed session.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*SessionDTO, error) {
	usr, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == domain.CodeNotFound {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.jwtManager.GenerateSession(usr.ID(), usr.Email())
	if err != nil {
		return nil, domain.NewInternalError("failed to issue session", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", usr.ID().String()))

	return &SessionDTO{Token: token, User: toUserDTO(usr)}, nil
}

// CurrentUser returns the account for the given ID.
func (s *AccountService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	usr, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(usr)
	return &dto, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	usr, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash()), []byte(req.CurrentPassword)); err != nil {
		return domain.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("failed to hash password", err)
	}

	if err := usr.ChangePassword(string(hash)); err != nil {
		return err
	}
	usr.IncrementVersion()

	if err := s.repo.Update(ctx, usr); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

// toUserDTO converts a domain User to its response DTO.
func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		Email:       u.Email(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		HomeAddress: u.HomeAddress(),
		CreatedAt:   u.CreatedAt(),
	}
}
