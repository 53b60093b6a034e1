package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/api"
	"github.com/sahilchouksey/academic-portfolio/config"
	"github.com/sahilchouksey/academic-portfolio/database/databasetest"
	"github.com/sahilchouksey/academic-portfolio/model"
	"github.com/sahilchouksey/academic-portfolio/router"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	superEmail    = "root@example.com"
	superPassword = "rootpass"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type page struct {
	Items      []json.RawMessage `json:"items"`
	Pagination struct {
		Current int   `json:"current"`
		Pages   int   `json:"pages"`
		Total   int64 `json:"total"`
		Limit   int   `json:"limit"`
	} `json:"pagination"`
}

type testServer struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, override func(*config.EnvironmentVariable)) *testServer {
	t.Helper()
	store := databasetest.Open(t)
	log := databasetest.QuietLogger()

	env := &config.EnvironmentVariable{
		GO_ENV:              "test",
		API_PREFIX:          "/api",
		JWT_SECRET:          "test-secret",
		JWT_ISSUER:          "test",
		JWT_EXPIRES_IN:      time.Hour,
		ADMIN_EMAIL:         superEmail,
		ADMIN_PASSWORD:      superPassword,
		LOGIN_MAX_ATTEMPTS:  5,
		LOGIN_LOCK_DURATION: 2 * time.Hour,
		MAX_PAGE_SIZE:       100,
	}
	if override != nil {
		override(env)
	}

	app := api.NewApp(log)
	router.SetupRoutes(app, router.Deps{
		Env:    env,
		Store:  store,
		Log:    log,
		Hasher: auth.Hasher{Cost: bcrypt.MinCost},
	})
	return &testServer{t: t, app: app, db: store.GetDB()}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	var env envelope
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *testServer) init() {
	s.t.Helper()
	status, env := s.do(fiber.MethodPost, "/api/init", "", nil)
	require.Equal(s.t, fiber.StatusOK, status, env.Message)
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	status, env := s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, fiber.StatusOK, status, env.Message)

	var data struct {
		Token string             `json:"token"`
		Admin model.AdminSummary `json:"admin"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.Token)
	return data.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// decodeItem unwraps the single-document payload {"item": ...}.
func decodeItem[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	return decode[struct {
		Item T `json:"item"`
	}](t, raw).Item
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(fiber.MethodGet, "/ping", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
}

func TestInitAndStatus(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(fiber.MethodGet, "/api/status", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"initialized":false,"adminCount":0,"personalCount":0}`, string(env.Data))

	status, env = s.do(fiber.MethodPost, "/api/init", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Database initialized successfully", env.Message)

	status, env = s.do(fiber.MethodPost, "/api/init", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Database already initialized", env.Message)

	_, env = s.do(fiber.MethodGet, "/api/status", "", nil)
	assert.JSONEq(t, `{"initialized":true,"adminCount":1,"personalCount":1}`, string(env.Data))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.init()

	status, env := s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": superEmail, "password": "wrongpass"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", env.Message)

	status, env = s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "whatever"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", env.Message)

	status, env = s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Len(t, env.Errors, 2)

	token := s.login("ROOT@example.com ", superPassword)

	status, env = s.do(fiber.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	verified := decode[struct {
		Admin model.AdminSummary `json:"admin"`
	}](t, env.Data)
	assert.Equal(t, superEmail, verified.Admin.Email)
	assert.Equal(t, string(auth.RoleSuperAdmin), verified.Admin.Role)
	assert.NotNil(t, verified.Admin.LastLogin)
}

func TestLoginLockout(t *testing.T) {
	s := newTestServer(t)
	s.init()

	for i := 0; i < 5; i++ {
		status, _ := s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": superEmail, "password": "wrongpass"})
		require.Equal(t, fiber.StatusUnauthorized, status)
	}

	status, env := s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": superEmail, "password": superPassword})
	assert.Equal(t, fiber.StatusLocked, status)
	assert.Equal(t, "Account temporarily locked due to too many failed login attempts", env.Message)
}

func TestProfileAndPasswordChange(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	status, env := s.do(fiber.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(env.Data), "passwordHash")
	assert.NotContains(t, string(env.Data), "failedAttempts")

	status, env = s.do(fiber.MethodPost, "/api/auth/change-password", token, map[string]string{"currentPassword": "nope-nope", "newPassword": "newpass1"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Current password is incorrect", env.Message)

	status, _ = s.do(fiber.MethodPost, "/api/auth/change-password", token, map[string]string{"currentPassword": superPassword, "newPassword": "newpass1"})
	require.Equal(t, fiber.StatusOK, status)

	s.login(superEmail, "newpass1")

	status, env = s.do(fiber.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Logged out successfully", env.Message)
}

func TestWriteRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(fiber.MethodPost, "/api/content/education", "", map[string]string{"degree": "PhD", "institution": "MIT", "year": "2020"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", env.Message)

	status, _ = s.do(fiber.MethodPut, "/api/content/personal", "", map[string]string{"name": "X"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestEducationLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	status, env := s.do(fiber.MethodPost, "/api/content/education", token, map[string]string{"degree": "PhD", "institution": "X", "year": "2020"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	assert.Equal(t, "Education created successfully", env.Message)
	created := decodeItem[model.Education](t, env.Data)
	assert.True(t, model.IsValidID(created.ID))
	assert.Equal(t, "PhD", created.Degree)

	status, env = s.do(fiber.MethodGet, "/api/content/education/"+created.ID, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "X", decodeItem[model.Education](t, env.Data).Institution)

	status, env = s.do(fiber.MethodPut, "/api/content/education/"+created.ID, token, map[string]string{"degree": "MSc", "institution": "MIT", "year": "2018"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Education updated successfully", env.Message)
	assert.Equal(t, "MSc", decodeItem[model.Education](t, env.Data).Degree)

	status, env = s.do(fiber.MethodDelete, "/api/content/education/"+created.ID, token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Education deleted successfully", env.Message)

	status, env = s.do(fiber.MethodGet, "/api/content/education/"+created.ID, "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Education not found", env.Message)
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	status, env := s.do(fiber.MethodPost, "/api/content/publications", token, map[string]interface{}{"title": "abc"})
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)

	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"title", "authors", "journal", "year"}, fields)
}

func TestInvalidAndUnknownIDs(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	resources := map[string]interface{}{
		"education":           map[string]string{"degree": "PhD", "institution": "X", "year": "2020"},
		"experience":          map[string]string{"position": "Professor", "organization": "MIT", "startDate": "2020-01"},
		"publications":        map[string]interface{}{"title": "A Paper", "authors": []string{"Ada"}, "journal": "Nature", "year": 2020},
		"research":            map[string]string{"title": "Project", "description": "A long description"},
		"news":                map[string]string{"title": "Headline", "content": "Some news content"},
		"scholarships-awards": map[string]interface{}{"title": "Award", "organization": "NSF", "year": 2020, "type": "award"},
		"teaching":            map[string]interface{}{"courseCode": "CS101", "courseName": "Intro", "semester": "Fall", "year": 2020, "level": "graduate"},
	}

	for resource, body := range resources {
		unknown := model.NewID()

		status, env := s.do(fiber.MethodGet, "/api/content/"+resource+"/not-an-id", "", nil)
		assert.Equal(t, fiber.StatusBadRequest, status, resource)
		assert.Equal(t, "Invalid ID format", env.Message, resource)

		status, _ = s.do(fiber.MethodGet, "/api/content/"+resource+"/"+unknown, "", nil)
		assert.Equal(t, fiber.StatusNotFound, status, resource)

		status, _ = s.do(fiber.MethodPut, "/api/content/"+resource+"/"+unknown, token, body)
		assert.Equal(t, fiber.StatusNotFound, status, resource)

		status, _ = s.do(fiber.MethodDelete, "/api/content/"+resource+"/"+unknown, token, nil)
		assert.Equal(t, fiber.StatusNotFound, status, resource)

		status, env = s.do(fiber.MethodPost, "/api/content/"+resource, token, body)
		assert.Equal(t, fiber.StatusCreated, status, "%s: %s %v", resource, env.Message, env.Errors)
	}

	status, env := s.do(fiber.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"stats":{"education":1,"experience":1,"publications":1,"research":1,"news":1,"scholarshipsAwards":1,"teaching":1,"admins":1}}`, string(env.Data))
}

func TestResearchExpansion(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	_, env := s.do(fiber.MethodPost, "/api/content/publications", token, map[string]interface{}{"title": "First Paper", "authors": []string{"Ada"}, "journal": "Nature", "year": 2020})
	first := decodeItem[model.Publication](t, env.Data)
	_, env = s.do(fiber.MethodPost, "/api/content/publications", token, map[string]interface{}{"title": "Second Paper", "authors": []string{"Bob"}, "journal": "Science", "year": 2021})
	second := decodeItem[model.Publication](t, env.Data)

	dangling := model.NewID()
	status, env := s.do(fiber.MethodPost, "/api/content/research", token, map[string]interface{}{
		"title":        "Project X",
		"description":  "Researching things at length",
		"publications": []string{second.ID, dangling, first.ID},
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	created := decodeItem[model.Research](t, env.Data)
	assert.Equal(t, "ongoing", created.Status)

	status, env = s.do(fiber.MethodGet, "/api/content/research/"+created.ID, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	view := decodeItem[model.ResearchView](t, env.Data)
	require.Len(t, view.Publications, 2)
	assert.Equal(t, second.ID, view.Publications[0].ID)
	assert.Equal(t, "Second Paper", view.Publications[0].Title)
	assert.Equal(t, first.ID, view.Publications[1].ID)

	status, env = s.do(fiber.MethodGet, "/api/content/research", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	list := decode[page](t, env.Data)
	require.Len(t, list.Items, 1)
	assert.Len(t, decode[model.ResearchView](t, list.Items[0]).Publications, 2)
}

func TestNewsDefaultsAndPagination(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	for i := 0; i < 3; i++ {
		status, env := s.do(fiber.MethodPost, "/api/content/news", token, map[string]string{
			"title":   fmt.Sprintf("Headline %d", i),
			"content": "Some news content",
			"date":    fmt.Sprintf("2024-01-0%d", i+1),
		})
		require.Equal(t, fiber.StatusCreated, status, env.Message)
		assert.Equal(t, "general", decodeItem[model.News](t, env.Data).Category)
	}

	status, env := s.do(fiber.MethodGet, "/api/content/news?limit=2&sort=-date", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	first := decode[page](t, env.Data)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, 2, first.Pagination.Pages)
	assert.EqualValues(t, 3, first.Pagination.Total)
	assert.Equal(t, "Headline 2", decode[model.News](t, first.Items[0]).Title)

	status, env = s.do(fiber.MethodGet, "/api/content/news?page=5&limit=2", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	beyond := decode[page](t, env.Data)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.Pagination.Current)
	assert.Equal(t, 2, beyond.Pagination.Pages)

	status, env = s.do(fiber.MethodGet, "/api/content/news?page=9223372036854775807&limit=10", "", nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	huge := decode[page](t, env.Data)
	assert.Empty(t, huge.Items)
	assert.EqualValues(t, 3, huge.Pagination.Total)
	assert.Equal(t, 1, huge.Pagination.Pages)
	assert.Greater(t, huge.Pagination.Current, huge.Pagination.Pages)
}

func TestPersonalSingleton(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	status, env := s.do(fiber.MethodGet, "/api/content/personal", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, model.PersonalID, decode[struct {
		Personal model.Personal `json:"personal"`
	}](t, env.Data).Personal.ID)

	profile := map[string]interface{}{
		"name":        "Dr. Ada Lovelace",
		"designation": "Professor",
		"department":  "Computer Science",
		"institution": "MIT",
		"city":        "Cambridge",
		"country":     "USA",
		"email1":      "ada@example.com",
		"phone":       "+1234567890",
		"office":      "Building 1",
		"address":     "1 Main Street",
		"socialLinks": []map[string]string{{"name": "Scholar", "url": "not a url"}},
	}
	status, env = s.do(fiber.MethodPut, "/api/content/personal", token, profile)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "socialLinks.0.url", env.Errors[0].Field)

	profile["socialLinks"] = []map[string]string{{"name": "Scholar", "url": "https://scholar.example.com/ada"}}
	status, env = s.do(fiber.MethodPut, "/api/content/personal", token, profile)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "Personal information updated successfully", env.Message)
	updated := decode[struct {
		Personal model.Personal `json:"personal"`
	}](t, env.Data).Personal
	assert.Equal(t, model.PersonalID, updated.ID)
	assert.Equal(t, "Dr. Ada Lovelace", updated.Name)
	require.Len(t, updated.SocialLinks, 1)

	var count int64
	require.NoError(t, s.db.Model(&model.Personal{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	s.init()
	token := s.login(superEmail, superPassword)

	s.do(fiber.MethodPost, "/api/content/publications", token, map[string]interface{}{"title": "Quantum Widgets", "authors": []string{"Ada"}, "journal": "Nature", "year": 2020})
	s.do(fiber.MethodPost, "/api/content/news", token, map[string]string{"title": "Quantum news item", "content": "Some news content"})

	status, env := s.do(fiber.MethodGet, "/api/content/search?q=q", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Search query must be at least 2 characters long", env.Message)

	status, env = s.do(fiber.MethodGet, "/api/content/search?q=quantum&type=publications", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	results := decode[map[string][]json.RawMessage](t, env.Data)
	assert.Len(t, results["publications"], 1)
	_, hasNews := results["news"]
	assert.False(t, hasNews)

	status, env = s.do(fiber.MethodGet, "/api/content/search?q=QUANTUM", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	results = decode[map[string][]json.RawMessage](t, env.Data)
	assert.Len(t, results["publications"], 1)
	assert.Len(t, results["news"], 1)
}

func TestAdminManagement(t *testing.T) {
	s := newTestServer(t)
	s.init()
	superToken := s.login(superEmail, superPassword)

	status, env := s.do(fiber.MethodPost, "/api/admin/admins", superToken, map[string]string{"email": "editor@example.com", "password": "editor1", "name": "Editor"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	created := decode[struct {
		Admin model.AdminSummary `json:"admin"`
	}](t, env.Data).Admin
	assert.Equal(t, string(auth.RoleAdmin), created.Role)

	status, env = s.do(fiber.MethodPost, "/api/admin/admins", superToken, map[string]string{"email": "editor@example.com", "password": "editor1", "name": "Editor"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Admin with this email already exists", env.Message)

	editorToken := s.login("editor@example.com", "editor1")

	status, env = s.do(fiber.MethodGet, "/api/admin/admins", editorToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Insufficient permissions", env.Message)

	status, _ = s.do(fiber.MethodGet, "/api/admin/dashboard", editorToken, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, env = s.do(fiber.MethodPut, "/api/admin/admins/bad", superToken, map[string]string{"name": "X"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid admin ID format", env.Message)

	status, _ = s.do(fiber.MethodPut, "/api/admin/admins/"+created.ID, superToken, map[string]interface{}{"isActive": false})
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.do(fiber.MethodGet, "/api/auth/verify", editorToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Admin account is disabled", env.Message)

	status, _ = s.do(fiber.MethodDelete, "/api/admin/admins/"+created.ID, superToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.do(fiber.MethodGet, "/api/admin/admins", superToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	listed := decode[struct {
		Admins []model.Admin `json:"admins"`
		Total  int           `json:"total"`
	}](t, env.Data)
	assert.Len(t, listed.Admins, 1)
	assert.Equal(t, 1, listed.Total)
}

func TestSeededAdminWithMixedCaseEmailAndPaddedPassword(t *testing.T) {
	s := newTestServerWith(t, func(env *config.EnvironmentVariable) {
		env.ADMIN_EMAIL = "Root@Example.com"
		env.ADMIN_PASSWORD = "  rootpass  "
	})
	s.init()

	token := s.login("Root@Example.com", "  rootpass  ")
	status, env := s.do(fiber.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	verified := decode[struct {
		Admin model.AdminSummary `json:"admin"`
	}](t, env.Data)
	assert.Equal(t, "root@example.com", verified.Admin.Email)

	status, _ = s.do(fiber.MethodPost, "/api/auth/login", "", map[string]string{"email": "root@example.com", "password": "rootpass"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(fiber.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Success)
}
