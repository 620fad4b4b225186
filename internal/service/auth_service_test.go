package service

import (
	"context"
	"testing"
	"time"

	"github.com/codebykhassan/contact-management-app/internal/model"
	"github.com/codebykhassan/contact-management-app/internal/repository"
	"github.com/codebykhassan/contact-management-app/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := r.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func newAuthService(repo repository.UserRepository, adminEmail string) AuthService {
	return NewAuthService(repo, utils.NewJWTUtil("test-secret", 1), adminEmail)
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, "")

	user, err := svc.Register(context.Background(), "alice@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	// Password must be stored hashed, never as plaintext
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("password123", user.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, "")

	_, err := svc.Register(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "different456")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_InitialAdminPromotion(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, "admin@example.com")

	admin, err := svc.Register(context.Background(), "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	regular, err := svc.Register(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, regular.Role)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	svc := NewAuthService(repo, jwtUtil, "")

	registered, err := svc.Register(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "alice@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, "")

	_, err := svc.Register(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrongpass")
	_, _, noUserErr := svc.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.ErrorIs(t, noUserErr, ErrInvalidCredentials)
	// Same message either way, so callers cannot enumerate accounts
	assert.Equal(t, wrongPassErr.Error(), noUserErr.Error())
}
