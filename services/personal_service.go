package services

import (
	"context"
	"errors"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersonalService reads and writes the single profile row
type PersonalService struct {
	db *gorm.DB
}

// NewPersonalService creates a new personal profile service
func NewPersonalService(db *gorm.DB) *PersonalService {
	return &PersonalService{db: db}
}

// GetOrCreate returns the profile, creating the default one first when the
// table is empty. Concurrent first calls converge on the same row.
func (s *PersonalService) GetOrCreate(ctx context.Context) (*model.Personal, error) {
	db := s.db.WithContext(ctx)

	var personal model.Personal
	err := db.Where("id = ?", model.PersonalID).First(&personal).Error
	if err == nil {
		return &personal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal("Failed to fetch personal information", err)
	}

	def := model.DefaultPersonal()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&def).Error; err != nil {
		return nil, apperror.Internal("Failed to fetch personal information", err)
	}

	if err := db.Where("id = ?", model.PersonalID).First(&personal).Error; err != nil {
		return nil, apperror.Internal("Failed to fetch personal information", err)
	}
	return &personal, nil
}

// Upsert merges req onto the profile and stores it
func (s *PersonalService) Upsert(ctx context.Context, req *schema.PersonalRequest) (*model.Personal, error) {
	personal, err := s.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	req.Apply(personal)
	if err := s.db.WithContext(ctx).Save(personal).Error; err != nil {
		return nil, apperror.Internal("Failed to update personal information", err)
	}
	return personal, nil
}
