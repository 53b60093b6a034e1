package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
)

const (
	invalidCredentialsMessage = "Invalid email or password"
	accountLockedMessage      = "Account temporarily locked due to too many failed login attempts"
)

// LockoutPolicy controls the per-account login lockout
type LockoutPolicy struct {
	MaxAttempts  int
	LockDuration time.Duration
}

// DefaultLockoutPolicy locks an account for two hours after five failures
var DefaultLockoutPolicy = LockoutPolicy{MaxAttempts: 5, LockDuration: 2 * time.Hour}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token string             `json:"token"`
	Admin model.AdminSummary `json:"admin"`
}

// CredentialService checks administrator passwords, maintains the failed
// attempt counter and issues tokens
type CredentialService struct {
	db         *gorm.DB
	hasher     auth.Hasher
	jwtManager *auth.JWTManager
	policy     LockoutPolicy
	log        *logrus.Logger
	now        func() time.Time
}

// NewCredentialService creates a new credential service
func NewCredentialService(db *gorm.DB, hasher auth.Hasher, jwtManager *auth.JWTManager, policy LockoutPolicy, log *logrus.Logger) *CredentialService {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = DefaultLockoutPolicy.MaxAttempts
	}
	if policy.LockDuration <= 0 {
		policy.LockDuration = DefaultLockoutPolicy.LockDuration
	}
	return &CredentialService{
		db:         db,
		hasher:     hasher,
		jwtManager: jwtManager,
		policy:     policy,
		log:        log,
		now:        time.Now,
	}
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return model.NormalizeEmail(email)
}

// Login verifies the credentials and returns a signed token. Unknown email,
// disabled account and wrong password all fail with the same message.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	db := s.db.WithContext(ctx)

	var admin model.Admin
	if err := db.Where("email = ?", NormalizeEmail(email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.InvalidCredentials, invalidCredentialsMessage, ErrInvalidCredentials)
		}
		return nil, apperror.Internal("Login failed. Please try again.", err)
	}

	if !admin.IsActive {
		return nil, apperror.Wrap(apperror.InvalidCredentials, invalidCredentialsMessage, ErrInvalidCredentials)
	}

	now := s.now()
	if admin.IsLocked(now) {
		return nil, apperror.Wrap(apperror.AccountLocked, accountLockedMessage, ErrAccountLocked)
	}

	if err := s.hasher.Verify(admin.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.WithError(err).WithField("admin_id", admin.ID).Warn("stored password hash is unusable")
		}
		if recErr := s.recordFailure(ctx, &admin, now); recErr != nil {
			return nil, apperror.Internal("Login failed. Please try again.", recErr)
		}
		return nil, apperror.Wrap(apperror.InvalidCredentials, invalidCredentialsMessage, ErrInvalidCredentials)
	}

	if err := db.Model(&model.Admin{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{
		"failed_attempts": 0,
		"lock_until":      nil,
		"last_login":      now,
	}).Error; err != nil {
		return nil, apperror.Internal("Login failed. Please try again.", err)
	}
	admin.FailedAttempts = 0
	admin.LockUntil = nil
	admin.LastLogin = &now

	token, err := s.jwtManager.Issue(admin.ID)
	if err != nil {
		return nil, apperror.Internal("Login failed. Please try again.", err)
	}

	return &LoginResult{Token: token, Admin: admin.Summary()}, nil
}

// recordFailure counts a wrong password. A lock that has already expired
// restarts the count at one. Reaching the limit sets the lock.
func (s *CredentialService) recordFailure(ctx context.Context, admin *model.Admin, now time.Time) error {
	db := s.db.WithContext(ctx)

	if admin.LockUntil != nil && !admin.LockUntil.After(now) {
		return db.Model(&model.Admin{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{
			"failed_attempts": 1,
			"lock_until":      nil,
		}).Error
	}

	if err := db.Model(&model.Admin{}).Where("id = ?", admin.ID).
		Update("failed_attempts", gorm.Expr("failed_attempts + ?", 1)).Error; err != nil {
		return err
	}

	lock := db.Model(&model.Admin{}).
		Where("id = ? AND failed_attempts >= ? AND lock_until IS NULL", admin.ID, s.policy.MaxAttempts).
		Update("lock_until", now.Add(s.policy.LockDuration))
	if lock.Error != nil {
		return lock.Error
	}
	if lock.RowsAffected > 0 {
		s.log.WithFields(logrus.Fields{"admin_id": admin.ID, "until": now.Add(s.policy.LockDuration)}).Warn("admin account locked")
	}
	return nil
}

// ChangePassword replaces the password of admin after checking the current one
func (s *CredentialService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	db := s.db.WithContext(ctx)

	var admin model.Admin
	if err := db.Where("id = ?", adminID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.NotFound, "Admin not found")
		}
		return apperror.Internal("Failed to change password", err)
	}

	if err := s.hasher.Verify(admin.PasswordHash, currentPassword); err != nil {
		return apperror.Wrap(apperror.InvalidCredentials, "Current password is incorrect", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return apperror.Validation([]apperror.FieldError{{Field: "newPassword", Message: err.Error()}})
		}
		return apperror.Internal("Failed to change password", err)
	}

	if err := db.Model(&model.Admin{}).Where("id = ?", admin.ID).Update("password_hash", hash).Error; err != nil {
		return apperror.Internal("Failed to change password", fmt.Errorf("update password: %w", err))
	}

	s.log.WithField("admin_id", admin.ID).Info("admin password changed")
	return nil
}
