package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
	"github.com/qvo1811/restaurant-backend/internal/port"
)

// AuthService manages user accounts and token issuance. Hashing and signing
// live behind ports; this service never sees algorithm details.
type AuthService struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	tokens port.TokenService
	clock  func() time.Time
}

func NewAuthService(users port.UserRepository, hasher port.PasswordHasher, tokens port.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		clock:  time.Now,
	}
}

// AuthResult pairs an issued token with the authenticated user.
type AuthResult struct {
	Token string
	User  domain.User
}

type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// Register creates a new USER-role account and signs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, fmt.Errorf("%w: email already exists", domain.ErrConflict)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock().UTC()
	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	return s.signIn(created)
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	return s.signIn(user)
}

func (s *AuthService) PromoteToAdmin(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Role = domain.RoleAdmin
	user.UpdatedAt = s.clock().UTC()
	return s.users.Update(ctx, user)
}

func (s *AuthService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

// UpdateUser applies only the provided fields.
func (s *AuthService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	user.UpdatedAt = s.clock().UTC()

	return s.users.Update(ctx, user)
}

func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *AuthService) signIn(user domain.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, User: user}, nil
}
