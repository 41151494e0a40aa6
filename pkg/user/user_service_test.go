package user

import (
	"context"
	"testing"

	"freshkeep/domain"
	"freshkeep/entities"
	"freshkeep/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryUserRepository struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (m *memoryUserRepository) CreateUser(_ context.Context, u *entities.User) error {
	m.byID[u.ID.String()] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memoryUserRepository) UpdateUser(_ context.Context, u *entities.User) error {
	m.byID[u.ID.String()] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUserRepository) GetAllActiveUsers(_ context.Context) ([]*entities.User, error) {
	var users []*entities.User
	for _, u := range m.byID {
		if u.IsActive {
			users = append(users, u)
		}
	}
	return users, nil
}

func newTestUserService() (UserService, *memoryUserRepository) {
	repo := newMemoryUserRepository()
	return NewUserService(repo, jwt.NewJWTService()), repo
}

func TestRegister(t *testing.T) {
	service, repo := newTestUserService()
	ctx := context.Background()

	req := domain.RegisterRequest{
		Email:    "jamie@example.com",
		Password: "correcthorse",
		FullName: "Jamie",
	}

	res, err := service.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, req.Email, res.Email)

	stored := repo.byEmail[req.Email]
	require.NotNil(t, stored)
	assert.NotEqual(t, req.Password, stored.Password, "password must be stored hashed")
	assert.Equal(t, entities.SubscriptionFree, stored.SubscriptionTier)
	assert.True(t, stored.IsActive)

	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	req := domain.RegisterRequest{
		Email:    "jamie@example.com",
		Password: "correcthorse",
		FullName: "Jamie",
	}
	_, err := service.Register(ctx, req)
	require.NoError(t, err)

	res, err := service.Login(ctx, domain.LoginRequest{Email: req.Email, Password: req.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)

	_, err = service.Login(ctx, domain.LoginRequest{Email: req.Email, Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateUser(t *testing.T) {
	service, repo := newTestUserService()
	ctx := context.Background()

	res, err := service.Register(ctx, domain.RegisterRequest{
		Email:    "jamie@example.com",
		Password: "correcthorse",
		FullName: "Jamie",
	})
	require.NoError(t, err)

	err = service.UpdateUser(ctx, domain.UpdateUserRequest{
		FullName:           "Jamie L",
		DietaryPreferences: "vegetarian",
	}, res.ID)
	require.NoError(t, err)

	stored := repo.byID[res.ID]
	assert.Equal(t, "Jamie L", stored.FullName)
	assert.Equal(t, "vegetarian", stored.DietaryPreferences)
}
