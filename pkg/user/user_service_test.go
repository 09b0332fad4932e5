package user

import (
	"context"
	"testing"
	"time"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/entities"
	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	UserRepository
	byEmail map[string]*entities.User
	byID    map[string]*entities.User
	byToken map[string]*entities.User
	updates map[string]map[string]interface{}
	top     []*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*entities.User{},
		byID:    map[string]*entities.User{},
		byToken: map[string]*entities.User{},
		updates: map[string]map[string]interface{}{},
	}
}

func (f *fakeUserRepo) add(u *entities.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
	if u.VerificationToken != "" {
		f.byToken[u.VerificationToken] = u
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *entities.User) error {
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByVerificationToken(ctx context.Context, token string) (*entities.User, error) {
	u, ok := f.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error {
	if f.updates[id] == nil {
		f.updates[id] = map[string]interface{}{}
	}
	for k, v := range updates {
		f.updates[id][k] = v
	}
	return nil
}

func (f *fakeUserRepo) GetLeaderboard(ctx context.Context, limit int) ([]*entities.User, error) {
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateTokenUser(userId string, role string) string { return "token-" + userId }

func (fakeJWT) ValidateTokenUser(token string) (*jwtlib.Token, error) { return nil, nil }

func (fakeJWT) GetUserIDByToken(token string) (string, string, error) { return "", "", nil }

func TestRegister_DefaultsToDonorRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, fakeJWT{})

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Sari",
		Email:    "sari@example.com",
		Phone:    "0812000001",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleDonor, result.Role)
	assert.True(t, result.IsActive)
	assert.False(t, result.EmailVerified)

	stored := repo.byEmail["sari@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NotEmpty(t, stored.VerificationToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&entities.User{ID: uuid.New(), Email: "sari@example.com"})
	svc := NewUserService(repo, fakeJWT{})

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Sari",
		Email:    "sari@example.com",
		Phone:    "0812000001",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func activeUser(password string) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &entities.User{
		ID:       uuid.New(),
		Name:     "Sari",
		Email:    "sari@example.com",
		Password: string(hashed),
		Role:     domain.RoleReceiver,
		IsActive: true,
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	u := activeUser("secret123")
	repo.add(u)
	svc := NewUserService(repo, fakeJWT{})

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "sari@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-"+u.ID.String(), result.Token)
	assert.Equal(t, u.ID.String(), result.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(activeUser("secret123"))
	svc := NewUserService(repo, fakeJWT{})

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "sari@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), fakeJWT{})

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	u := activeUser("secret123")
	u.IsActive = false
	repo.add(u)
	svc := NewUserService(repo, fakeJWT{})

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "sari@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestVerifyEmail_Success(t *testing.T) {
	repo := newFakeUserRepo()
	expires := time.Now().Add(1 * time.Hour)
	u := activeUser("secret123")
	u.VerificationToken = "tok-1"
	u.VerificationExpires = &expires
	repo.add(u)
	svc := NewUserService(repo, fakeJWT{})

	err := svc.VerifyEmail(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, true, repo.updates[u.ID.String()]["email_verified"])
}

func TestVerifyEmail_Expired(t *testing.T) {
	repo := newFakeUserRepo()
	expires := time.Now().Add(-1 * time.Hour)
	u := activeUser("secret123")
	u.VerificationToken = "tok-1"
	u.VerificationExpires = &expires
	repo.add(u)
	svc := NewUserService(repo, fakeJWT{})

	err := svc.VerifyEmail(context.Background(), "tok-1")
	assert.ErrorIs(t, err, domain.ErrVerificationExpired)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), fakeJWT{})

	err := svc.VerifyEmail(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrVerificationMismatch)
}

func TestGetLeaderboard_Ranks(t *testing.T) {
	repo := newFakeUserRepo()
	first := &entities.User{ID: uuid.New(), Name: "A", Role: domain.RoleDonor, Points: 300}
	second := &entities.User{ID: uuid.New(), Name: "B", Role: domain.RoleVolunteer, Points: 120}
	repo.top = []*entities.User{first, second}
	svc := NewUserService(repo, fakeJWT{})

	entries, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "A", entries[0].Name)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 120, entries[1].Points)
}
