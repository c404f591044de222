package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type userServiceImpl struct {
	userRepository user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &userServiceImpl{userRepository: userRepository}
}

// Create implements user.UserService.
func (s *userServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	created, err := s.userRepository.Create(ctx, user.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: &hashed,
		Role:         user.Role(req.Role),
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// GetProfile implements user.UserService.
func (s *userServiceImpl) GetProfile(ctx context.Context) (user.UserResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to read token claims: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}
