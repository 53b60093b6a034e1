package database

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedResult reports which defaults a seeding run created
type SeedResult struct {
	Admin    bool `json:"admin"`
	Personal bool `json:"personal"`
}

// Seeder handles database seeding operations
type Seeder struct {
	db     *gorm.DB
	log    *logrus.Logger
	hasher auth.Hasher
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, log *logrus.Logger, hasher auth.Hasher) *Seeder {
	return &Seeder{db: db, log: log, hasher: hasher}
}

// SeedAll creates the default administrator and the default profile when
// they are missing. Running it again is a no-op.
func (s *Seeder) SeedAll(ctx context.Context, adminEmail, adminPassword string) (SeedResult, error) {
	s.log.Info("🌱 Starting database seeding...")

	var result SeedResult
	created, err := s.SeedAdminUser(ctx, adminEmail, adminPassword)
	if err != nil {
		return result, fmt.Errorf("failed to seed admin user: %w", err)
	}
	result.Admin = created

	created, err = s.SeedPersonal(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to seed personal profile: %w", err)
	}
	result.Personal = created

	s.log.Info("✅ Database seeding completed successfully!")
	return result, nil
}

// SeedAdminUser creates the default super admin when no administrator exists
func (s *Seeder) SeedAdminUser(ctx context.Context, email, password string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Admin{}).Count(&count).Error; err != nil {
		return false, err
	}

	if count > 0 {
		s.log.Info("⏭️  Admin user already exists, skipping...")
		return false, nil
	}

	if email == "" || password == "" {
		s.log.Warn("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin user creation")
		return false, nil
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		Email:        model.NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         "Super Admin",
		Role:         string(auth.RoleSuperAdmin),
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, err
	}

	s.log.WithField("email", admin.Email).Info("✅ Created admin user")
	return true, nil
}

// SeedPersonal creates the default profile when none exists
func (s *Seeder) SeedPersonal(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Personal{}).Count(&count).Error; err != nil {
		return false, err
	}

	if count > 0 {
		s.log.Info("⏭️  Personal profile already exists, skipping...")
		return false, nil
	}

	personal := model.DefaultPersonal()
	if err := s.db.WithContext(ctx).Create(&personal).Error; err != nil {
		return false, err
	}

	s.log.Info("✅ Created default personal profile")
	return true, nil
}
