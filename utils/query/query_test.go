package query

import (
	"io"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func parse(t *testing.T, rawQuery string, maxLimit int) Pagination {
	t.Helper()
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePagination(c, maxLimit)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?"+rawQuery, nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	return got
}

func TestParsePagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Sort: "-createdAt"}, parse(t, "", 100))
	assert.Equal(t, Pagination{Page: 3, Limit: 25, Sort: "title"}, parse(t, "page=3&limit=25&sort=title", 100))
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Sort: "-createdAt"}, parse(t, "page=-2&limit=abc", 100))
	assert.Equal(t, 100, parse(t, "limit=5000", 100).Limit)
	assert.Equal(t, 5000, parse(t, "limit=5000", 0).Limit)
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Pagination{Page: 5, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt, Limit: 10}.Offset())
	assert.Equal(t, 0, Pagination{Page: 0, Limit: 10}.Offset())
}

func TestParsePagination_HugePageStaysPastTheEnd(t *testing.T) {
	for _, raw := range []string{"1844674407370955162", "9223372036854775807", "99999999999999999999999"} {
		p := parse(t, "page="+raw+"&limit=10", 100)
		assert.Equal(t, math.MaxInt/10, p.Page, raw)
		assert.Greater(t, p.Offset(), 0, raw)
		assert.Equal(t, (p.Page-1)*p.Limit, p.Offset(), raw)
	}
}

func TestOrderClause(t *testing.T) {
	db := &gorm.DB{Config: &gorm.Config{NamingStrategy: schema.NamingStrategy{}}}

	assert.Equal(t, "created_at DESC", OrderClause(db, &model.Publication{}, "-createdAt"))
	assert.Equal(t, "year DESC, title ASC", OrderClause(db, &model.Publication{}, "-year, +title"))
	assert.Equal(t, "course_code ASC", OrderClause(db, &model.Teaching{}, "courseCode,password,-"))
	assert.Equal(t, "", OrderClause(db, &model.News{}, "nonsense"))
}
