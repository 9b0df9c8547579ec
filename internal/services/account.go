// Package services holds the business logic between the HTTP handlers
// and the database: account lifecycle, password reset and meetings.
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/meetclone/internal/database"
	"github.com/thereayou/meetclone/internal/models"
	"github.com/thereayou/meetclone/internal/validation"
)

// OTPWindow is how long a password-reset code stays valid.
const OTPWindow = 5 * time.Minute

// UserStore is the slice of the database layer the account service needs.
type UserStore interface {
	SaveUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	UsernameExists(username string) (bool, error)
	UpdateLastLogin(id uuid.UUID) error
	UpdatePassword(id uuid.UUID, passwordHash string) error
}

type AccountService struct {
	users UserStore
}

func NewAccountService(users UserStore) *AccountService {
	return &AccountService{users: users}
}

// SignUp registers a new user. The caller passes already-sanitized text
// fields; SignUp normalizes the email, runs format and uniqueness checks
// and stores the password as a bcrypt hash. The source this app is modeled
// on kept passwords in plain text; hashing is a deliberate deviation.
func (s *AccountService) SignUp(email, username, fullName, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)

	if !validation.IsValidEmail(email) {
		return nil, &ValidationError{Field: "email"}
	}
	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	if !validation.IsValidUsername(username) {
		return nil, &ValidationError{Field: "username"}
	}
	exists, err = s.users.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUsername
	}

	if !validation.IsValidPassword(password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.users.SaveUser(user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// A concurrent signup won the exists-then-insert race; the
			// unique index tells us it happened but not on which column.
			if taken, lookupErr := s.users.EmailExists(email); lookupErr == nil && taken {
				return nil, ErrDuplicateEmail
			}
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

// LogIn authenticates by email and password and stamps last_login on
// success. The returned user seeds the HTTP session.
func (s *AccountService) LogIn(email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return nil, &ValidationError{Field: "email"}
	}

	user, err := s.users.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrDeactivated
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredential
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLogin = &now

	return user, nil
}

// RequestPasswordReset checks the address belongs to a user and mints an
// OTP. The caller stashes the code and timestamp in the session and hands
// the code to the mailer.
func (s *AccountService) RequestPasswordReset(email string) (otp string, issuedAt time.Time, err error) {
	email = validation.NormalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return "", time.Time{}, &ValidationError{Field: "email"}
	}

	if _, err := s.users.FindUserByEmail(email); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", time.Time{}, ErrNotFound
		}
		return "", time.Time{}, err
	}

	return validation.GenerateOTP(), time.Now(), nil
}

// VerifyOTP compares a submitted code against the one stored in the
// session. Expiry is checked first so a correct but stale code still
// reports Expired.
func (s *AccountService) VerifyOTP(submitted, stored string, issuedAt, now time.Time) error {
	if now.Sub(issuedAt) > OTPWindow {
		return ErrExpired
	}

	submitted = strings.TrimSpace(submitted)
	if !validation.IsValidOTP(submitted) {
		return &ValidationError{Field: "otp"}
	}

	if submitted != strings.TrimSpace(stored) {
		return ErrMismatch
	}

	return nil
}

// ResetPassword overwrites the user's password after the OTP flow. The
// email from the form must match the one the reset was requested for.
func (s *AccountService) ResetPassword(email, sessionEmail, newPassword string) error {
	email = validation.NormalizeEmail(email)
	if validation.NormalizeEmail(sessionEmail) != email {
		return ErrSessionMismatch
	}

	if !validation.IsValidPassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.users.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(user.ID, string(hash))
}
