package services

import (
	"testing"
	"time"

	"github.com/sahilchouksey/academic-portfolio/database/databasetest"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testHasher = auth.Hasher{Cost: bcrypt.MinCost}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return databasetest.Open(t).GetDB()
}

func createAdmin(t *testing.T, db *gorm.DB, email, password string, role auth.Role, active bool) *model.Admin {
	t.Helper()
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)

	admin := &model.Admin{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Admin",
		Role:         string(role),
		IsActive:     active,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "test"})
}
