package user

import (
	"context"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByVerificationToken(ctx context.Context, token string) (*entities.User, error)
		UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error
		ListUsers(ctx context.Context, role string, isActive *bool, page, limit int) ([]*entities.User, int64, error)

		AddPoints(ctx context.Context, userID string, points int) error
		GetUserBadges(ctx context.Context, userID string) ([]*entities.Badge, error)
		AddBadge(ctx context.Context, badge *entities.Badge) error

		GetActiveVolunteers(ctx context.Context) ([]*entities.User, error)
		GetLeaderboard(ctx context.Context, limit int) ([]*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("Badges").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByVerificationToken(ctx context.Context, token string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("verification_token = ?", token).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *userRepository) ListUsers(ctx context.Context, role string, isActive *bool, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

// AddPoints increments the user's point balance atomically; points never
// decrease.
func (r *userRepository) AddPoints(ctx context.Context, userID string, points int) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).Error
}

func (r *userRepository) GetUserBadges(ctx context.Context, userID string) ([]*entities.Badge, error) {
	var badges []*entities.Badge
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

// AddBadge inserts a badge; the unique (user_id, name) index keeps a badge
// from being earned twice even under concurrent evaluation.
func (r *userRepository) AddBadge(ctx context.Context, badge *entities.Badge) error {
	return r.db.WithContext(ctx).
		Where(entities.Badge{UserID: badge.UserID, Name: badge.Name}).
		FirstOrCreate(badge).Error
}

func (r *userRepository) GetActiveVolunteers(ctx context.Context) ([]*entities.User, error) {
	var volunteers []*entities.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", domain.RoleVolunteer, true).
		Find(&volunteers).Error; err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (r *userRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Preload("Badges").
		Where("is_active = ?", true).
		Order("points DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
