package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/meetclone/internal/database"
	"github.com/thereayou/meetclone/internal/models"
	"github.com/thereayou/meetclone/internal/services"
)

type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *UserStoreMock) FindUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStoreMock) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *UserStoreMock) UsernameExists(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *UserStoreMock) UpdateLastLogin(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *UserStoreMock) UpdatePassword(id uuid.UUID, passwordHash string) error {
	args := m.Called(id, passwordHash)
	return args.Error(0)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAccountService_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		username   string
		password   string
		setupMocks func(m *UserStoreMock)
		wantErr    error
	}{
		{
			name:     "success",
			email:    "a@b.com",
			username: "alice",
			password: "Passw0rd",
			setupMocks: func(m *UserStoreMock) {
				m.On("EmailExists", "a@b.com").Return(false, nil).Once()
				m.On("UsernameExists", "alice").Return(false, nil).Once()
				m.On("SaveUser", mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "a@b.com" &&
						u.Username == "alice" &&
						u.Role == models.RoleUser &&
						u.IsActive &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Passw0rd")) == nil
				})).Return(nil).Once()
			},
		},
		{
			name:     "email normalized before uniqueness check",
			email:    "  A@B.COM ",
			username: "alice",
			password: "Passw0rd",
			setupMocks: func(m *UserStoreMock) {
				m.On("EmailExists", "a@b.com").Return(true, nil).Once()
			},
			wantErr: services.ErrDuplicateEmail,
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			username: "alice",
			password: "Passw0rd",
			wantErr:  services.ErrInvalidFormat,
		},
		{
			name:     "invalid username",
			email:    "a@b.com",
			username: "1alice",
			password: "Passw0rd",
			setupMocks: func(m *UserStoreMock) {
				m.On("EmailExists", "a@b.com").Return(false, nil).Once()
			},
			wantErr: services.ErrInvalidFormat,
		},
		{
			name:     "duplicate username",
			email:    "a@b.com",
			username: "alice",
			password: "Passw0rd",
			setupMocks: func(m *UserStoreMock) {
				m.On("EmailExists", "a@b.com").Return(false, nil).Once()
				m.On("UsernameExists", "alice").Return(true, nil).Once()
			},
			wantErr: services.ErrDuplicateUsername,
		},
		{
			name:     "weak password",
			email:    "a@b.com",
			username: "alice",
			password: "abcdefg1",
			setupMocks: func(m *UserStoreMock) {
				m.On("EmailExists", "a@b.com").Return(false, nil).Once()
				m.On("UsernameExists", "alice").Return(false, nil).Once()
			},
			wantErr: services.ErrWeakPassword,
		},
		{
			name:     "concurrent signup loses to unique index",
			email:    "a@b.com",
			username: "alice",
			password: "Passw0rd",
			setupMocks: func(m *UserStoreMock) {
				m.On("EmailExists", "a@b.com").Return(false, nil).Once()
				m.On("UsernameExists", "alice").Return(false, nil).Once()
				m.On("SaveUser", mock.Anything).Return(database.ErrDuplicate).Once()
				m.On("EmailExists", "a@b.com").Return(true, nil).Once()
			},
			wantErr: services.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(UserStoreMock)
			if tt.setupMocks != nil {
				tt.setupMocks(store)
			}

			svc := services.NewAccountService(store)
			user, err := svc.SignUp(tt.email, tt.username, "Full Name", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, models.RoleUser, user.Role)
				assert.True(t, user.IsActive)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestAccountService_LogIn(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(t *testing.T, m *UserStoreMock)
		wantErr    error
	}{
		{
			name:     "success updates last login",
			email:    "a@b.com",
			password: "Passw0rd",
			setupMocks: func(t *testing.T, m *UserStoreMock) {
				m.On("FindUserByEmail", "a@b.com").Return(&models.User{
					ID:           userID,
					Email:        "a@b.com",
					PasswordHash: hashOf(t, "Passw0rd"),
					Role:         models.RoleUser,
					IsActive:     true,
				}, nil).Once()
				m.On("UpdateLastLogin", userID).Return(nil).Once()
			},
		},
		{
			name:     "unknown email",
			email:    "a@b.com",
			password: "Passw0rd",
			setupMocks: func(t *testing.T, m *UserStoreMock) {
				m.On("FindUserByEmail", "a@b.com").Return(nil, database.ErrNotFound).Once()
			},
			wantErr: services.ErrNotFound,
		},
		{
			name:     "deactivated account",
			email:    "a@b.com",
			password: "Passw0rd",
			setupMocks: func(t *testing.T, m *UserStoreMock) {
				m.On("FindUserByEmail", "a@b.com").Return(&models.User{
					ID:           userID,
					PasswordHash: hashOf(t, "Passw0rd"),
					IsActive:     false,
				}, nil).Once()
			},
			wantErr: services.ErrDeactivated,
		},
		{
			name:     "wrong password",
			email:    "a@b.com",
			password: "WrongPass1",
			setupMocks: func(t *testing.T, m *UserStoreMock) {
				m.On("FindUserByEmail", "a@b.com").Return(&models.User{
					ID:           userID,
					PasswordHash: hashOf(t, "Passw0rd"),
					IsActive:     true,
				}, nil).Once()
			},
			wantErr: services.ErrBadCredential,
		},
		{
			name:     "malformed email",
			email:    "nope",
			password: "Passw0rd",
			wantErr:  services.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(UserStoreMock)
			if tt.setupMocks != nil {
				tt.setupMocks(t, store)
			}

			svc := services.NewAccountService(store)
			user, err := svc.LogIn(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotNil(t, user.LastLogin)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestAccountService_RequestPasswordReset(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		store := new(UserStoreMock)
		store.On("FindUserByEmail", "a@b.com").Return(nil, database.ErrNotFound).Once()

		svc := services.NewAccountService(store)
		_, _, err := svc.RequestPasswordReset("a@b.com")
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("success returns six digit code and timestamp", func(t *testing.T) {
		store := new(UserStoreMock)
		store.On("FindUserByEmail", "a@b.com").Return(&models.User{ID: uuid.New()}, nil).Once()

		svc := services.NewAccountService(store)
		otp, issuedAt, err := svc.RequestPasswordReset("A@b.com")
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, otp)
		assert.WithinDuration(t, time.Now(), issuedAt, time.Second)
	})
}

func TestAccountService_VerifyOTP(t *testing.T) {
	svc := services.NewAccountService(new(UserStoreMock))
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		submitted string
		stored    string
		now       time.Time
		wantErr   error
	}{
		{"match within window", "123456", "123456", issued.Add(4 * time.Minute), nil},
		{"match with surrounding whitespace", " 123456 ", "123456", issued.Add(time.Minute), nil},
		{"exactly at the window edge", "123456", "123456", issued.Add(services.OTPWindow), nil},
		{"expired even when correct", "123456", "123456", issued.Add(services.OTPWindow + time.Second), services.ErrExpired},
		{"bad format", "12345", "123456", issued.Add(time.Minute), services.ErrInvalidFormat},
		{"wrong code", "654321", "123456", issued.Add(time.Minute), services.ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.VerifyOTP(tt.submitted, tt.stored, issued, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccountService_ResetPassword(t *testing.T) {
	userID := uuid.New()

	t.Run("session email mismatch", func(t *testing.T) {
		svc := services.NewAccountService(new(UserStoreMock))
		err := svc.ResetPassword("a@b.com", "other@b.com", "Passw0rd")
		assert.ErrorIs(t, err, services.ErrSessionMismatch)
	})

	t.Run("weak password", func(t *testing.T) {
		svc := services.NewAccountService(new(UserStoreMock))
		err := svc.ResetPassword("a@b.com", "a@b.com", "weak")
		assert.ErrorIs(t, err, services.ErrWeakPassword)
	})

	t.Run("success rehashes the password", func(t *testing.T) {
		store := new(UserStoreMock)
		store.On("FindUserByEmail", "a@b.com").Return(&models.User{ID: userID}, nil).Once()
		store.On("UpdatePassword", userID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("NewPassw0rd")) == nil
		})).Return(nil).Once()

		svc := services.NewAccountService(store)
		err := svc.ResetPassword("A@B.com", "a@b.com", "NewPassw0rd")
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})
}
