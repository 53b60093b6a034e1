package services

import (
	"context"
	"strings"

	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"gorm.io/gorm"
)

const (
	// MinSearchLength is the shortest accepted trimmed query
	MinSearchLength = 2
	// SearchLimit caps the results per content type
	SearchLimit = 10
)

// SearchResults holds the matches per content type. A nil field was not
// searched.
type SearchResults struct {
	Publications *[]model.Publication `json:"publications,omitempty"`
	Research     *[]model.Research    `json:"research,omitempty"`
	News         *[]model.News        `json:"news,omitempty"`
	Teaching     *[]model.Teaching    `json:"teaching,omitempty"`
}

// SearchService performs case-insensitive substring matching over content
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new search service
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search matches query against a fixed set of columns per content type.
// An empty type or "all" searches every type; an unknown type searches none.
func (s *SearchService) Search(ctx context.Context, query, contentType string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSearchLength {
		return nil, apperror.New(apperror.QueryTooShort, "Search query must be at least 2 characters long")
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	all := contentType == "" || contentType == "all"
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	results := &SearchResults{}

	var err error
	if all || contentType == "publications" {
		if results.Publications, err = searchTable[model.Publication](ctx, s.db, pattern, "title", "authors", "journal", "abstract"); err != nil {
			return nil, err
		}
	}
	if all || contentType == "research" {
		if results.Research, err = searchTable[model.Research](ctx, s.db, pattern, "title", "description", "keywords"); err != nil {
			return nil, err
		}
	}
	if all || contentType == "news" {
		if results.News, err = searchTable[model.News](ctx, s.db, pattern, "title", "content"); err != nil {
			return nil, err
		}
	}
	if all || contentType == "teaching" {
		if results.Teaching, err = searchTable[model.Teaching](ctx, s.db, pattern, "course_code", "course_name", "description"); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func searchTable[T any](ctx context.Context, db *gorm.DB, pattern string, columns ...string) (*[]T, error) {
	conditions := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		// JSON array columns are matched on their text form
		conditions[i] = "LOWER(CAST(" + col + " AS TEXT)) LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}

	items := make([]T, 0)
	err := db.WithContext(ctx).
		Where(strings.Join(conditions, " OR "), args...).
		Limit(SearchLimit).
		Find(&items).Error
	if err != nil {
		return nil, apperror.Internal("Search failed", err)
	}
	return &items, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
