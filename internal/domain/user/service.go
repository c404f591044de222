package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetProfile(ctx context.Context) (UserResponse, error)
}
