package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrAmbiguousUserName       = errors.New("more than one user has this name")
	ErrInvalidOAuthProvider    = errors.New("invalid oauth provider")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
