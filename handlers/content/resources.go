package content

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
	"gorm.io/gorm"
)

// Resources holds one CRUD resource per content type
type Resources struct {
	Education          *Resource[model.Education, schema.EducationRequest, *schema.EducationRequest]
	Experience         *Resource[model.Experience, schema.ExperienceRequest, *schema.ExperienceRequest]
	Publications       *Resource[model.Publication, schema.PublicationRequest, *schema.PublicationRequest]
	Research           *Resource[model.Research, schema.ResearchRequest, *schema.ResearchRequest]
	News               *Resource[model.News, schema.NewsRequest, *schema.NewsRequest]
	ScholarshipsAwards *Resource[model.ScholarshipAward, schema.ScholarshipAwardRequest, *schema.ScholarshipAwardRequest]
	Teaching           *Resource[model.Teaching, schema.TeachingRequest, *schema.TeachingRequest]
}

// NewResources creates the resources for all seven content types
func NewResources(db *gorm.DB, validator *validation.Validator, maxLimit int) *Resources {
	research := NewResource[model.Research, schema.ResearchRequest]("research", "Research", db, validator, maxLimit)
	research.Expand = ExpandResearch

	return &Resources{
		Education:          NewResource[model.Education, schema.EducationRequest]("education", "Education", db, validator, maxLimit),
		Experience:         NewResource[model.Experience, schema.ExperienceRequest]("experience", "Experience", db, validator, maxLimit),
		Publications:       NewResource[model.Publication, schema.PublicationRequest]("publications", "Publication", db, validator, maxLimit),
		Research:           research,
		News:               NewResource[model.News, schema.NewsRequest]("news", "News", db, validator, maxLimit),
		ScholarshipsAwards: NewResource[model.ScholarshipAward, schema.ScholarshipAwardRequest]("scholarships-awards", "Scholarship/Award", db, validator, maxLimit),
		Teaching:           NewResource[model.Teaching, schema.TeachingRequest]("teaching", "Teaching", db, validator, maxLimit),
	}
}

// Register mounts every resource under router
func (rs *Resources) Register(router fiber.Router, protect ...fiber.Handler) {
	rs.Education.Register(router, protect...)
	rs.Experience.Register(router, protect...)
	rs.Publications.Register(router, protect...)
	rs.Research.Register(router, protect...)
	rs.News.Register(router, protect...)
	rs.ScholarshipsAwards.Register(router, protect...)
	rs.Teaching.Register(router, protect...)
}

// ExpandResearch replaces the publication ids of each item with summaries.
// Order is kept and ids without a stored publication are dropped.
func ExpandResearch(ctx context.Context, db *gorm.DB, items []model.Research) ([]interface{}, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, item := range items {
		for _, id := range item.Publications {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	summaries := make(map[string]model.PublicationSummary, len(ids))
	if len(ids) > 0 {
		var found []model.PublicationSummary
		if err := db.WithContext(ctx).
			Model(&model.Publication{}).
			Select("id", "title", "year", "journal").
			Where("id IN ?", ids).
			Find(&found).Error; err != nil {
			return nil, err
		}
		for _, s := range found {
			summaries[s.ID] = s
		}
	}

	views := make([]interface{}, 0, len(items))
	for _, item := range items {
		view := model.ResearchView{Research: item, Publications: make([]model.PublicationSummary, 0, len(item.Publications))}
		for _, id := range item.Publications {
			if s, ok := summaries[id]; ok {
				view.Publications = append(view.Publications, s)
			}
		}
		views = append(views, view)
	}
	return views, nil
}
