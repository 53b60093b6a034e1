package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/schema"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// ContentFile is the layout of a content seed file. Each list holds items
// written with the same field names as the JSON API.
type ContentFile struct {
	Personal           map[string]interface{}   `yaml:"personal"`
	Education          []map[string]interface{} `yaml:"education"`
	Experience         []map[string]interface{} `yaml:"experience"`
	Publications       []map[string]interface{} `yaml:"publications"`
	Research           []map[string]interface{} `yaml:"research"`
	News               []map[string]interface{} `yaml:"news"`
	ScholarshipsAwards []map[string]interface{} `yaml:"scholarships-awards"`
	Teaching           []map[string]interface{} `yaml:"teaching"`
}

// ImportCount reports what happened to the items of one content type
type ImportCount struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Invalid int `json:"invalid"`
}

// ImportReport maps a content type to its counts
type ImportReport map[string]*ImportCount

// ContentImporter loads a YAML content file through the validation layer
type ContentImporter struct {
	db        *gorm.DB
	validator *validation.Validator
	personal  *PersonalService
	log       *logrus.Logger
}

// NewContentImporter creates a new content importer
func NewContentImporter(db *gorm.DB, validator *validation.Validator, log *logrus.Logger) *ContentImporter {
	return &ContentImporter{
		db:        db,
		validator: validator,
		personal:  NewPersonalService(db),
		log:       log,
	}
}

// Import reads a content file and stores every valid item. Invalid items are
// logged and counted; they do not stop the import. Education entries that
// match an existing degree and institution are skipped.
func (imp *ContentImporter) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	var file ContentFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode content file: %w", err)
	}

	report := ImportReport{}
	db := imp.db.WithContext(ctx)

	if file.Personal != nil {
		count := &ImportCount{}
		report["personal"] = count
		var req schema.PersonalRequest
		if err := imp.bind(file.Personal, &req); err != nil {
			imp.log.WithError(err).Warn("personal profile rejected")
			count.Invalid++
		} else if _, err := imp.personal.Upsert(ctx, &req); err != nil {
			return report, err
		} else {
			count.Created++
		}
	}

	educationExists := func(m *model.Education) (bool, error) {
		var n int64
		err := db.Model(&model.Education{}).
			Where("degree = ? AND institution = ?", m.Degree, m.Institution).
			Count(&n).Error
		return n > 0, err
	}

	if err := importItems[model.Education, schema.EducationRequest](imp, db, report, "education", file.Education, educationExists); err != nil {
		return report, err
	}
	if err := importItems[model.Experience, schema.ExperienceRequest](imp, db, report, "experience", file.Experience, nil); err != nil {
		return report, err
	}
	if err := importItems[model.Publication, schema.PublicationRequest](imp, db, report, "publications", file.Publications, nil); err != nil {
		return report, err
	}
	if err := importItems[model.Research, schema.ResearchRequest](imp, db, report, "research", file.Research, nil); err != nil {
		return report, err
	}
	if err := importItems[model.News, schema.NewsRequest](imp, db, report, "news", file.News, nil); err != nil {
		return report, err
	}
	if err := importItems[model.ScholarshipAward, schema.ScholarshipAwardRequest](imp, db, report, "scholarships-awards", file.ScholarshipsAwards, nil); err != nil {
		return report, err
	}
	if err := importItems[model.Teaching, schema.TeachingRequest](imp, db, report, "teaching", file.Teaching, nil); err != nil {
		return report, err
	}

	return report, nil
}

// bind routes a decoded YAML value through the JSON validation path
func (imp *ContentImporter) bind(raw map[string]interface{}, dst interface{}) error {
	body, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return imp.validator.Bind(body, dst)
}

func importItems[T any, P any, PT interface {
	*P
	Apply(*T)
}](imp *ContentImporter, db *gorm.DB, report ImportReport, name string, raw []map[string]interface{}, exists func(*T) (bool, error)) error {
	if len(raw) == 0 {
		return nil
	}

	count := &ImportCount{}
	report[name] = count

	for i, item := range raw {
		req := PT(new(P))
		if err := imp.bind(item, req); err != nil {
			imp.log.WithError(err).WithFields(logrus.Fields{"type": name, "index": i}).Warn("content item rejected")
			count.Invalid++
			continue
		}

		var record T
		req.Apply(&record)

		if exists != nil {
			found, err := exists(&record)
			if err != nil {
				return fmt.Errorf("check existing %s: %w", name, err)
			}
			if found {
				count.Skipped++
				continue
			}
		}

		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		count.Created++
	}

	imp.log.WithFields(logrus.Fields{
		"type":    name,
		"created": count.Created,
		"skipped": count.Skipped,
		"invalid": count.Invalid,
	}).Info("content imported")
	return nil
}
