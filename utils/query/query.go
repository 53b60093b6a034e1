package query

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "-createdAt"
)

// Pagination holds the parsed list parameters
type Pagination struct {
	Page  int
	Limit int
	Sort  string
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page, limit and sort from the query string. Values
// that are not positive integers fall back to the defaults and limit is
// clamped to maxLimit.
func ParsePagination(c *fiber.Ctx, maxLimit int) Pagination {
	p := Pagination{
		Page:  positiveInt(c.Query("page"), DefaultPage),
		Limit: positiveInt(c.Query("limit"), DefaultLimit),
		Sort:  strings.TrimSpace(c.Query("sort")),
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	// Keep (page-1)*limit representable
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	return p
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		// Too large for int, Atoi saturated at math.MaxInt
		return n
	}
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

var schemaCache sync.Map

// OrderClause converts a sort expression such as "-year,title" into an ORDER
// BY clause for model. Fields are the JSON names of the model; unknown fields
// are dropped. The result is empty when nothing usable remains.
func OrderClause(db *gorm.DB, model interface{}, sort string) string {
	s, err := schema.Parse(model, &schemaCache, db.NamingStrategy)
	if err != nil {
		return ""
	}

	var parts []string
	for _, term := range strings.Split(sort, ",") {
		term = strings.TrimSpace(term)
		dir := "ASC"
		if strings.HasPrefix(term, "-") {
			dir = "DESC"
			term = term[1:]
		} else {
			term = strings.TrimPrefix(term, "+")
		}
		if term == "" {
			continue
		}

		field := fieldByJSONName(s, term)
		if field == nil || field.DBName == "" {
			continue
		}
		parts = append(parts, field.DBName+" "+dir)
	}
	return strings.Join(parts, ", ")
}

func fieldByJSONName(s *schema.Schema, name string) *schema.Field {
	for _, f := range s.Fields {
		jsonName := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if jsonName == name || (jsonName == "" && f.Name == name) {
			return f
		}
	}
	return nil
}
