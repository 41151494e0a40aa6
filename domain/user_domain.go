package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetMe      = "user profile retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to retrieve user profile"
	MessageFailedUpdateUser = "failed to update user"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		FullName string `json:"full_name" validate:"required"`
	}

	RegisterResponse struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		FullName           string `json:"full_name" validate:"omitempty"`
		DietaryPreferences string `json:"dietary_preferences" validate:"omitempty"`
	}

	UserResponse struct {
		ID                 string    `json:"id"`
		Email              string    `json:"email"`
		FullName           string    `json:"full_name"`
		DietaryPreferences string    `json:"dietary_preferences,omitempty"`
		SubscriptionTier   string    `json:"subscription_tier"`
		CreatedAt          time.Time `json:"created_at"`
	}
)
