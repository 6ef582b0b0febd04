// Package businessflow contains the business logic for the visitor register.
package businessflow

import (
	"context"
	"log"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/app/services"
	"github.com/front-desk/visitor-register/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthFlow handles staff and admin authentication
type AuthFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	tokenService services.TokenService
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	tokenService services.TokenService,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Login authenticates a user by username and password. An unknown username and
// a wrong password fail with the identical error so the response carries no
// account-existence signal.
func (af *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := af.userRepo.ByUsername(ctx, request.Username)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := af.tokenService.GenerateAccessToken(user.ID.String(), user.Username, string(user.Role))
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	log.Printf("User logged in: %s", user.Username)

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        ToAuthUserDTO(*user),
	}, nil
}
