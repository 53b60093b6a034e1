package services

import (
	"context"
	"errors"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DashboardStats holds the number of stored items per content type
type DashboardStats struct {
	Education          int64 `json:"education"`
	Experience         int64 `json:"experience"`
	Publications       int64 `json:"publications"`
	Research           int64 `json:"research"`
	News               int64 `json:"news"`
	ScholarshipsAwards int64 `json:"scholarshipsAwards"`
	Teaching           int64 `json:"teaching"`
	Admins             int64 `json:"admins"`
}

// AdminService manages administrator accounts
type AdminService struct {
	db     *gorm.DB
	hasher auth.Hasher
	log    *logrus.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, hasher auth.Hasher, log *logrus.Logger) *AdminService {
	return &AdminService{db: db, hasher: hasher, log: log}
}

// List returns all administrators, newest first
func (s *AdminService) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, apperror.Internal("Failed to fetch admins", err)
	}
	return admins, nil
}

// Get returns one administrator
func (s *AdminService) Get(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.NotFound, "Admin not found")
		}
		return nil, apperror.Internal("Failed to fetch admin", err)
	}
	return &admin, nil
}

// Create adds an active administrator with the admin role
func (s *AdminService) Create(ctx context.Context, req schema.CreateAdminRequest) (*model.Admin, error) {
	db := s.db.WithContext(ctx)
	email := NormalizeEmail(req.Email)

	taken, err := s.emailTaken(ctx, email, "")
	if err != nil {
		return nil, apperror.Internal("Failed to create admin", err)
	}
	if taken {
		return nil, apperror.New(apperror.BadRequest, "Admin with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal("Failed to create admin", err)
	}

	admin := &model.Admin{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         string(auth.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, apperror.Internal("Failed to create admin", err)
	}

	s.log.WithField("email", admin.Email).Info("admin created")
	return admin, nil
}

// Update changes name, email, role or active flag. An administrator cannot
// deactivate their own account.
func (s *AdminService) Update(ctx context.Context, actor *model.Admin, id string, req schema.UpdateAdminRequest) (*model.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor != nil && actor.ID == admin.ID && req.IsActive != nil && !*req.IsActive {
		return nil, apperror.New(apperror.BadRequest, "Cannot deactivate your own account")
	}

	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email != admin.Email {
			taken, err := s.emailTaken(ctx, email, admin.ID)
			if err != nil {
				return nil, apperror.Internal("Failed to update admin", err)
			}
			if taken {
				return nil, apperror.New(apperror.BadRequest, "Email already in use")
			}
			admin.Email = email
		}
	}
	if req.Role != nil && auth.Role(*req.Role).Valid() {
		admin.Role = *req.Role
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(admin).Error; err != nil {
		return nil, apperror.Internal("Failed to update admin", err)
	}
	return admin, nil
}

// Delete removes an administrator. An administrator cannot delete their own
// account.
func (s *AdminService) Delete(ctx context.Context, actor *model.Admin, id string) error {
	if actor != nil && actor.ID == id {
		return apperror.New(apperror.BadRequest, "Cannot delete your own account")
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Admin{})
	if result.Error != nil {
		return apperror.Internal("Failed to delete admin", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.NotFound, "Admin not found")
	}

	s.log.WithField("admin_id", id).Info("admin deleted")
	return nil
}

// Dashboard counts the stored items of every content type
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.Education{}, &stats.Education},
		{&model.Experience{}, &stats.Experience},
		{&model.Publication{}, &stats.Publications},
		{&model.Research{}, &stats.Research},
		{&model.News{}, &stats.News},
		{&model.ScholarshipAward{}, &stats.ScholarshipsAwards},
		{&model.Teaching{}, &stats.Teaching},
		{&model.Admin{}, &stats.Admins},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, apperror.Internal("Failed to fetch dashboard stats", err)
		}
	}
	return stats, nil
}

func (s *AdminService) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&model.Admin{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
