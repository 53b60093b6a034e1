package validation

import (
	"testing"
	"time"

	"github.com/sahilchouksey/academic-portfolio/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type testPayload struct {
	Title    string     `json:"title" validate:"required,min=3"`
	Year     int        `json:"year" validate:"required,gte=1900,max_year_ahead=1"`
	Kind     string     `json:"kind" validate:"oneof=a b"`
	Ref      string     `json:"ref" validate:"omitempty,objectid"`
	Tags     []string   `json:"tags" validate:"omitempty,dive,max=3"`
	Items    []testItem `json:"items" validate:"omitempty,dive"`
	When     string     `json:"when" validate:"omitempty,isodate"`
	Homepage *string    `json:"homepage" validate:"omitempty,url_or_empty"`
}

func (p *testPayload) SetDefaults() {
	if p.Kind == "" {
		p.Kind = "a"
	}
}

func fieldsOf(t *testing.T, err error) []apperror.FieldError {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.ValidationFailed, appErr.Kind)
	return appErr.Fields
}

func TestBind_AppliesDefaultsAndStripsUnknown(t *testing.T) {
	v := NewValidator()
	var p testPayload

	err := v.Bind([]byte(`{"title":"  hello  ","year":2000,"unknown":"x"}`), &p)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Title)
	assert.Equal(t, "a", p.Kind)
}

func TestBind_CollectsEveryFieldError(t *testing.T) {
	v := NewValidator()
	var p testPayload

	err := v.Bind([]byte(`{"kind":"z","ref":"nope","tags":["ok","toolong"]}`), &p)
	fields := fieldsOf(t, err)

	var paths []string
	for _, f := range fields {
		paths = append(paths, f.Field)
	}
	assert.Equal(t, []string{"title", "year", "kind", "ref", "tags.1"}, paths)
	assert.Equal(t, "title is required", fields[0].Message)
	assert.Equal(t, "kind must be one of [a, b]", fields[2].Message)
}

func TestBind_EmptyBodyReportsRequiredFields(t *testing.T) {
	v := NewValidator()
	var p testPayload

	fields := fieldsOf(t, v.Bind(nil, &p))
	require.Len(t, fields, 2)
	assert.Equal(t, "title", fields[0].Field)
	assert.Equal(t, "year", fields[1].Field)
}

func TestBind_YearAhead(t *testing.T) {
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	var ok testPayload
	require.NoError(t, v.Bind([]byte(`{"title":"abc","year":2025}`), &ok))

	var bad testPayload
	fields := fieldsOf(t, v.Bind([]byte(`{"title":"abc","year":2026}`), &bad))
	require.Len(t, fields, 1)
	assert.Equal(t, "year must be less than or equal to 2025", fields[0].Message)
}

func TestBind_TypeMismatchBecomesFieldError(t *testing.T) {
	v := NewValidator()
	var p testPayload

	fields := fieldsOf(t, v.Bind([]byte(`{"title":"abc","year":"soon"}`), &p))
	require.Len(t, fields, 1)
	assert.Equal(t, "year", fields[0].Field)
	assert.Equal(t, "year must be of type number", fields[0].Message)
}

func TestBind_ReportsEveryTypeMismatchWithIndexes(t *testing.T) {
	v := NewValidator()
	var p testPayload

	body := `{"title":5,"year":"soon","tags":["ok",7],"items":[{"name":"a"},{"name":3}]}`
	fields := fieldsOf(t, v.Bind([]byte(body), &p))

	got := make(map[string]string, len(fields))
	order := make([]string, 0, len(fields))
	for _, fe := range fields {
		got[fe.Field] = fe.Message
		order = append(order, fe.Field)
	}
	assert.Equal(t, []string{"title", "year", "tags.1", "items.1.name"}, order)
	assert.Equal(t, "title must be of type string", got["title"])
	assert.Equal(t, "year must be of type number", got["year"])
	assert.Equal(t, "tags.1 must be of type string", got["tags.1"])
	assert.Equal(t, "items.1.name must be of type string", got["items.1.name"])
}

func TestBind_ArrayWhereObjectExpected(t *testing.T) {
	v := NewValidator()
	var p testPayload

	fields := fieldsOf(t, v.Bind([]byte(`{"title":"abc","year":2000,"items":"nope"}`), &p))
	require.Len(t, fields, 1)
	assert.Equal(t, "items", fields[0].Field)
	assert.Equal(t, "items must be of type array", fields[0].Message)
}

func TestBind_MalformedJSON(t *testing.T) {
	v := NewValidator()
	var p testPayload

	err := v.Bind([]byte(`{"title":`), &p)
	assert.Equal(t, apperror.BadRequest, apperror.KindOf(err))
}

func TestBind_OptionalPointerAcceptsEmptyString(t *testing.T) {
	v := NewValidator()

	var p testPayload
	require.NoError(t, v.Bind([]byte(`{"title":"abc","year":2000,"homepage":""}`), &p))
	require.NotNil(t, p.Homepage)
	assert.Equal(t, "", *p.Homepage)

	var bad testPayload
	fields := fieldsOf(t, v.Bind([]byte(`{"title":"abc","year":2000,"homepage":"not a url"}`), &bad))
	assert.Equal(t, "homepage", fields[0].Field)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "socialLinks.0.url", FieldPath("PersonalRequest.socialLinks[0].url"))
	assert.Equal(t, "title", FieldPath("testPayload.title"))
	assert.Equal(t, "authors.12", FieldPath("PublicationRequest.authors[12]"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	_, err = ParseDate("2024-03-05T10:00:00Z")
	require.NoError(t, err)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestSanitizeStrings(t *testing.T) {
	name := "  x\x00 "
	p := testPayload{Title: " t ", Tags: []string{" a "}, Items: []testItem{{Name: " n "}}, Homepage: &name}
	SanitizeStrings(&p)

	assert.Equal(t, "t", p.Title)
	assert.Equal(t, []string{"a"}, p.Tags)
	assert.Equal(t, "n", p.Items[0].Name)
	assert.Equal(t, "x", *p.Homepage)
}

func TestSanitizeStrings_SkipsOptedOutFields(t *testing.T) {
	p := struct {
		Name   string `json:"name"`
		Secret string `json:"secret" sanitize:"-"`
	}{Name: " ada ", Secret: " s3cret\x00 "}

	SanitizeStrings(&p)
	assert.Equal(t, "ada", p.Name)
	assert.Equal(t, " s3cret\x00 ", p.Secret)
}
