package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Admin is an administrator account allowed to manage portfolio content
type Admin struct {
	Base
	Email          string     `gorm:"uniqueIndex;not null;type:varchar(254)" json:"email"`
	PasswordHash   string     `gorm:"not null" json:"-"` // Never expose password in JSON
	Name           string     `gorm:"not null;type:varchar(100)" json:"name"`
	Role           string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"` // admin, super_admin
	IsActive       bool       `gorm:"not null" json:"isActive"`
	FailedAttempts int        `gorm:"not null;default:0" json:"-"`
	LockUntil      *time.Time `json:"-"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
}

// NormalizeEmail lowercases and trims an email address. Stored admin emails
// are always normalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeSave keeps the stored email normalized whatever the write path
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	a.Email = NormalizeEmail(a.Email)
	return nil
}

// IsLocked reports whether a lockout is in effect at now
func (a *Admin) IsLocked(now time.Time) bool {
	return a.LockUntil != nil && a.LockUntil.After(now)
}

// AdminSummary is the compact principal view returned by login and verify
type AdminSummary struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Summary returns the compact view of the admin
func (a *Admin) Summary() AdminSummary {
	return AdminSummary{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		LastLogin: a.LastLogin,
	}
}
