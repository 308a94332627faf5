// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/holidays-api/internal/core"
	"github.com/carterperez-dev/holidays-api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type UserInfo struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProfileUpdate struct {
	Email *string
	Name  *string
}

// UserProvider is the credential store as seen by the auth flows. Create and
// UpdatePassword take raw passwords and hash them before storage.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, password, name, role string,
	) (*UserInfo, error)
	ValidatePassword(
		ctx context.Context,
		user *UserInfo,
		password string,
	) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, password string) error
	UpdateProfile(
		ctx context.Context,
		userID int64,
		update ProfileUpdate,
	) (*UserInfo, error)
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
}

func NewService(jwt *JWTManager, userProvider UserProvider) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := s.userProvider.ValidatePassword(ctx, user, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, fmt.Errorf("login: %w", core.ErrAccountDeactivated)
	}

	return s.issue(user)
}

// Register creates an account. The requested admin role is honoured only
// when the caller is itself an authenticated admin.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	caller *middleware.Identity,
) (*UserInfo, error) {
	role := middleware.RoleUser
	if req.Role == middleware.RoleAdmin && caller.IsAdmin() {
		role = middleware.RoleAdmin
	}

	user, err := s.userProvider.Create(ctx, req.Email, req.Password, req.Name, role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return user, nil
}

func (s *Service) GetProfile(
	ctx context.Context,
	userID int64,
) (*UserInfo, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID int64,
	req UpdateProfileRequest,
) (*UserInfo, error) {
	user, err := s.userProvider.UpdateProfile(ctx, userID, ProfileUpdate{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID int64,
	currentPassword, newPassword string,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, err := s.userProvider.ValidatePassword(ctx, user, currentPassword)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrWrongPassword
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// Refresh reissues a token for the account behind already verified claims,
// picking up its current email and role. The password is not checked again.
func (s *Service) Refresh(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) (*TokenResponse, error) {
	if claims == nil {
		return nil, fmt.Errorf("refresh: %w", core.ErrUnauthorized)
	}

	user, err := s.userProvider.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issue(user)
}

func (s *Service) issue(user *UserInfo) (*TokenResponse, error) {
	issued, err := s.jwt.CreateAccessToken(TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return s.tokenResponse(issued, user), nil
}

func (s *Service) tokenResponse(issued *IssuedToken, user *UserInfo) *TokenResponse {
	return &TokenResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresIn: int(s.jwt.ExpiresIn().Seconds()),
		ExpiresAt: issued.ExpiresAt,
		User:      ToUserResponse(user),
	}
}
