package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"github.com/Denyusha/Food-Donation-updated/internal/utils"
	"github.com/Denyusha/Food-Donation-updated/internal/utils/mailing"
	"github.com/Denyusha/Food-Donation-updated/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.User, error)
		UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
		VerifyEmail(ctx context.Context, token string) error
		GetLeaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
		ListUsers(ctx context.Context, role string, isActive *bool, page, limit int) ([]*domain.User, int64, error)
		SetUserActive(ctx context.Context, userID string, active bool) error
		AdminVerifyUser(ctx context.Context, userID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = domain.RoleDonor
	}

	verificationToken := uuid.New().String()
	verificationExpires := time.Now().Add(24 * time.Hour)

	user := &entities.User{
		ID:                  uuid.New(),
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Password:            string(hashed),
		Role:                role,
		IsActive:            true,
		VerificationToken:   verificationToken,
		VerificationExpires: &verificationExpires,
		OrganizationName:    req.OrganizationName,
		OrganizationType:    req.OrganizationType,
	}

	if req.Location != nil {
		user.Address = req.Location.Address
		lat := req.Location.Coordinates.Lat
		lng := req.Location.Coordinates.Lng
		user.Latitude = &lat
		user.Longitude = &lng
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Verification mail is best-effort; the account exists either way and the
	// token can be re-sent.
	verifyLink := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), verificationToken)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Please verify your account by clicking <a href=%q>this link</a>.</p>", user.Name, verifyLink)
	_ = mailing.SendMail(user.Email, "Verify your account", body)

	return toDomainUser(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	now := time.Now()
	_ = s.userRepository.UpdateUser(ctx, user.ID.String(), map[string]interface{}{"last_login": now})

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)

	return &domain.LoginResponse{
		Token: token,
		User:  *toDomainUser(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.OrganizationName != "" {
		updates["organization_name"] = req.OrganizationName
	}
	if req.OrganizationType != "" {
		updates["organization_type"] = req.OrganizationType
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Location != nil {
		updates["address"] = req.Location.Address
		updates["latitude"] = req.Location.Coordinates.Lat
		updates["longitude"] = req.Location.Coordinates.Lng
	}

	if len(updates) > 0 {
		if err := s.userRepository.UpdateUser(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	return s.Me(ctx, userID)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.findByVerificationToken(ctx, token)
	if err != nil {
		return err
	}

	if user.VerificationExpires != nil && user.VerificationExpires.Before(time.Now()) {
		return domain.ErrVerificationExpired
	}

	return s.userRepository.UpdateUser(ctx, user.ID.String(), map[string]interface{}{
		"email_verified":       true,
		"verification_token":   "",
		"verification_expires": nil,
	})
}

func (s *userService) findByVerificationToken(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, domain.ErrVerificationMismatch
	}

	user, err := s.userRepository.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVerificationMismatch
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetLeaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	users, err := s.userRepository.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, &domain.LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID.String(),
			Name:   u.Name,
			Role:   u.Role,
			Points: u.Points,
			Badges: len(u.Badges),
		})
	}

	return entries, nil
}

func (s *userService) ListUsers(ctx context.Context, role string, isActive *bool, page, limit int) ([]*domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	users, count, err := s.userRepository.ListUsers(ctx, role, isActive, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, toDomainUser(u))
	}
	return result, count, nil
}

func (s *userService) SetUserActive(ctx context.Context, userID string, active bool) error {
	if _, err := s.Me(ctx, userID); err != nil {
		return err
	}
	return s.userRepository.UpdateUser(ctx, userID, map[string]interface{}{"is_active": active})
}

// AdminVerifyUser marks the account verified without the mailed token flow.
func (s *userService) AdminVerifyUser(ctx context.Context, userID string) error {
	if _, err := s.Me(ctx, userID); err != nil {
		return err
	}
	return s.userRepository.UpdateUser(ctx, userID, map[string]interface{}{
		"email_verified":       true,
		"verification_token":   "",
		"verification_expires": nil,
	})
}

func toDomainUser(u *entities.User) *domain.User {
	badges := make([]domain.UserBadge, 0, len(u.Badges))
	for _, b := range u.Badges {
		badges = append(badges, domain.UserBadge{Name: b.Name, EarnedAt: b.EarnedAt})
	}

	result := &domain.User{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		EmailVerified:    u.EmailVerified,
		IsActive:         u.IsActive,
		Points:           u.Points,
		Badges:           badges,
		OrganizationName: u.OrganizationName,
		OrganizationType: u.OrganizationType,
		ProfileImageURL:  u.ProfileImageURL,
		Bio:              u.Bio,
		CreatedAt:        u.CreatedAt,
	}

	if u.Latitude != nil && u.Longitude != nil {
		result.Location = &domain.Location{
			Address: u.Address,
			Coordinates: domain.Coordinates{
				Lat: *u.Latitude,
				Lng: *u.Longitude,
			},
		}
	}

	return result
}
