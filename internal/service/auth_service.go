package service

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/fitstack/fitstack/internal/domain"
)

// IdentityClient defines the interface for identity provider token
// verification. This allows mocking for tests.
type IdentityClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService handles authentication and user registration
type AuthService struct {
	userRepo       domain.UserRepository
	identityClient IdentityClient
	tokens         *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	identityClient IdentityClient,
	tokens *TokenService,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		identityClient: identityClient,
		tokens:         tokens,
	}
}

// LoginResult contains the user, the issued tokens and whether the account
// was newly created.
type LoginResult struct {
	User      *domain.User
	Tokens    *TokenPair
	IsNewUser bool
}

// LoginOrRegister verifies the identity provider token, then logs the user
// in, creating the account on first login or linking the provider UID to a
// pre-provisioned account found by email.
func (s *AuthService) LoginOrRegister(ctx context.Context, providerToken, userAgent, ipAddress string) (*LoginResult, error) {
	// Step 1: Verify identity provider token and extract user info
	token, err := s.identityClient.VerifyIDToken(ctx, providerToken)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	providerUID := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	if email == "" {
		return nil, fmt.Errorf("identity token missing email claim")
	}
	if name == "" {
		name = email
	}

	// Step 2: Search for existing user by provider_uid
	existingUser, err := s.userRepo.GetByProviderUID(ctx, providerUID)

	// Step 3: If not found by provider_uid, try email (pre-provisioned accounts)
	if err == domain.ErrNotFound {
		emailUser, emailErr := s.userRepo.GetByEmail(ctx, email)
		if emailErr == nil && emailUser != nil {
			if emailUser.ProviderUID == "" {
				if updateErr := s.userRepo.UpdateProviderUID(ctx, emailUser.ID, providerUID); updateErr != nil {
					return nil, fmt.Errorf("failed to link identity account: %w", updateErr)
				}
				emailUser.ProviderUID = providerUID
				existingUser = emailUser
				err = nil
			} else {
				return nil, fmt.Errorf("email already linked to different account")
			}
		}
	}

	// Step 4: Login existing user
	if err == nil && existingUser != nil {
		pair, err := s.tokens.GenerateTokenPair(ctx, existingUser, userAgent, ipAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to generate tokens: %w", err)
		}
		return &LoginResult{User: existingUser, Tokens: pair, IsNewUser: false}, nil
	}

	if err != nil && err != domain.ErrNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Step 5: New user - create with the default member role. Admins are
	// promoted out of band, never at registration.
	newUser := &domain.User{
		ProviderUID: providerUID,
		Email:       email,
		Name:        name,
		Roles:       []string{domain.RoleMember},
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.tokens.GenerateTokenPair(ctx, newUser, userAgent, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginResult{User: newUser, Tokens: pair, IsNewUser: true}, nil
}
