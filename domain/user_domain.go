package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetMe          = "user retrieved successfully"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessVerifyEmail    = "email verified successfully"
	MessageSuccessGetLeaderboard = "leaderboard retrieved successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to retrieve user"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedVerifyEmail    = "failed to verify email"
	MessageFailedGetLeaderboard = "failed to retrieve leaderboard"

	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrCredentialsInvalid   = errors.New("invalid email or password")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrVerificationExpired  = errors.New("verification token expired")
	ErrVerificationMismatch = errors.New("verification token invalid")
)

type (
	RegisterRequest struct {
		Name             string           `json:"name" validate:"required"`
		Email            string           `json:"email" validate:"required,email"`
		Phone            string           `json:"phone" validate:"required"`
		Password         string           `json:"password" validate:"required,min=6"`
		Role             string           `json:"role" validate:"omitempty,oneof=donor receiver volunteer"`
		Location         *LocationRequest `json:"location" validate:"omitempty"`
		OrganizationName string           `json:"organization_name" validate:"omitempty"`
		OrganizationType string           `json:"organization_type" validate:"omitempty"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	UpdateUserRequest struct {
		Name             string           `json:"name" validate:"omitempty"`
		Phone            string           `json:"phone" validate:"omitempty"`
		Location         *LocationRequest `json:"location" validate:"omitempty"`
		OrganizationName string           `json:"organization_name" validate:"omitempty"`
		OrganizationType string           `json:"organization_type" validate:"omitempty"`
		Bio              string           `json:"bio" validate:"omitempty"`
	}

	UserBadge struct {
		Name     string    `json:"name"`
		EarnedAt time.Time `json:"earned_at"`
	}

	User struct {
		ID               string      `json:"id"`
		Name             string      `json:"name"`
		Email            string      `json:"email"`
		Phone            string      `json:"phone"`
		Role             string      `json:"role"`
		Location         *Location   `json:"location,omitempty"`
		EmailVerified    bool        `json:"email_verified"`
		IsActive         bool        `json:"is_active"`
		Points           int         `json:"points"`
		Badges           []UserBadge `json:"badges"`
		OrganizationName string      `json:"organization_name,omitempty"`
		OrganizationType string      `json:"organization_type,omitempty"`
		ProfileImageURL  string      `json:"profile_image_url,omitempty"`
		Bio              string      `json:"bio,omitempty"`
		CreatedAt        time.Time   `json:"created_at"`
	}

	LeaderboardEntry struct {
		Rank   int    `json:"rank"`
		UserID string `json:"user_id"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		Points int    `json:"points"`
		Badges int    `json:"badges"`
	}
)
