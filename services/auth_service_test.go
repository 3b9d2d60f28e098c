package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/masterblog/models"
	"github.com/akinalp/masterblog/pkg"
)

// mockUserRepo is a hand-rolled UserRepository backed by function fields so
// each test overrides only what it needs.
type mockUserRepo struct {
	createFn         func(ctx context.Context, user *models.User) error
	getByIDFn        func(ctx context.Context, id string) (*models.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	emailExistsFn    func(ctx context.Context, email string) (bool, error)
	updateFn         func(ctx context.Context, user *models.User) error
	updatePasswordFn func(ctx context.Context, userID, hash string) error
	deleteFn         func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.updateFn(ctx, user)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	return m.updatePasswordFn(ctx, userID, hash)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func newTestAuthService(repo *mockUserRepo) AuthService {
	return NewAuthService(repo, "test-secret", 60)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegisterIssuesDecodableToken(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = "user-1"
			return nil
		},
	}
	svc := newTestAuthService(repo)

	master, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "a@b.com",
		Name:     "annie",
		Password: "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", master.Email)
	assert.Equal(t, "annie", master.Name)
	require.NotEmpty(t, master.Token)

	claims, err := svc.ValidateToken(master.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "annie", claims.Name)
}

func TestRegisterDuplicateEmailFailsValidationBeforePersistence(t *testing.T) {
	created := false
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
		createFn: func(ctx context.Context, user *models.User) error {
			created = true
			return nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "a@b.com",
		Name:     "annie",
		Password: "abc123",
	})

	require.Error(t, err)
	assert.Equal(t, "Email address already exists!", err.Error())
	assert.Equal(t, http.StatusUnprocessableEntity, pkg.Normalize(err).Status)
	assert.False(t, created)
}

func TestRegisterValidationFirstErrorWins(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	svc := newTestAuthService(repo)

	// Invalid email, bad password, and empty name all at once: the email
	// rule is declared first, so its message wins.
	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "not-an-email",
		Name:     "",
		Password: "123456",
	})

	require.Error(t, err)
	assert.Equal(t, "Please enter a valid email.", err.Error())
}

func TestLoginRoundTripsIdentity(t *testing.T) {
	hash := mustHash(t, "abc123")
	repo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "user-1", Email: email, Name: "annie", PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	master, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "a@b.com",
		Password: "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", master.Email)
	assert.Equal(t, "annie", master.Name)

	claims, err := svc.ValidateToken(master.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestLoginUnknownUserIs401(t *testing.T) {
	repo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, pkg.ErrNoRecord
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "a@b.com",
		Password: "abc123",
	})

	require.Error(t, err)
	assert.Equal(t, "This user could not find!", err.Error())
	assert.Equal(t, http.StatusUnauthorized, pkg.Normalize(err).Status)
}

func TestLoginWrongPasswordIs401Never422(t *testing.T) {
	hash := mustHash(t, "abc123")
	repo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "a@b.com",
		Password: "wrong1",
	})

	require.Error(t, err)
	assert.Equal(t, "Wrong password!", err.Error())
	assert.Equal(t, http.StatusUnauthorized, pkg.Normalize(err).Status)
}

func TestUpdateProfileNothingToChangeIs404(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
	})

	_, err := svc.UpdateProfile(context.Background(), "user-1", &models.UpdateProfileRequest{})

	require.Error(t, err)
	assert.Equal(t, "There is nothing to change!", err.Error())
	assert.Equal(t, http.StatusNotFound, pkg.Normalize(err).Status)
}

func TestUpdateProfileOwnEmailIsNotExempt(t *testing.T) {
	// Re-submitting the current address still trips the uniqueness rule.
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := newTestAuthService(repo)

	_, err := svc.UpdateProfile(context.Background(), "user-1", &models.UpdateProfileRequest{
		NewMail: "a@b.com",
	})

	require.Error(t, err)
	assert.Equal(t, "Email address already exists!", err.Error())
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	var saved *models.User
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Email: "old@b.com", Name: "annie"}, nil
		},
		updateFn: func(ctx context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}
	svc := newTestAuthService(repo)

	master, err := svc.UpdateProfile(context.Background(), "user-1", &models.UpdateProfileRequest{
		NewName: "marianne",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "old@b.com", saved.Email)
	assert.Equal(t, "marianne", saved.Name)
	assert.Equal(t, "old@b.com", master.Email)
	assert.Equal(t, "marianne", master.Name)
	assert.Empty(t, master.Token)
}

func TestChangePasswordMismatchFailsValidation(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.ChangePassword(context.Background(), "user-1", &models.ChangePasswordRequest{
		NewPassword:     "abc123",
		ConfirmPassword: "abc124",
	})

	require.Error(t, err)
	assert.Equal(t, "Passwords have to match!", err.Error())
	assert.Equal(t, http.StatusUnprocessableEntity, pkg.Normalize(err).Status)
}

func TestChangePasswordStoresNewHash(t *testing.T) {
	var storedHash string
	repo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Email: "a@b.com", Name: "annie"}, nil
		},
		updatePasswordFn: func(ctx context.Context, userID, hash string) error {
			storedHash = hash
			return nil
		},
	}
	svc := newTestAuthService(repo)

	master, err := svc.ChangePassword(context.Background(), "user-1", &models.ChangePasswordRequest{
		NewPassword:     "xyz789",
		ConfirmPassword: "xyz789",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", master.Email)
	require.NotEmpty(t, storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("xyz789")))
}

func TestDeleteUserReturnsEmail(t *testing.T) {
	deleted := ""
	repo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Email: "a@b.com"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := newTestAuthService(repo)

	email, err := svc.DeleteUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
	assert.Equal(t, "user-1", deleted)
}

func TestDeleteUserUnknownAccountIs401(t *testing.T) {
	repo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, pkg.ErrNoRecord
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.DeleteUser(context.Background(), "gone")
	require.Error(t, err)
	assert.Equal(t, "Invalid Authentication!", err.Error())
	assert.Equal(t, http.StatusUnauthorized, pkg.Normalize(err).Status)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, "Not authenticated.", err.Error())
	assert.Equal(t, http.StatusUnauthorized, pkg.Normalize(err).Status)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = "user-1"
			return nil
		},
	}
	issuer := NewAuthService(repo, "secret-a", 60)
	verifier := NewAuthService(repo, "secret-b", 60)

	master, err := issuer.Register(context.Background(), &models.RegisterRequest{
		Email:    "a@b.com",
		Name:     "annie",
		Password: "abc123",
	})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(master.Token)
	require.Error(t, err)
	assert.Equal(t, "Not authenticated.", err.Error())
}
