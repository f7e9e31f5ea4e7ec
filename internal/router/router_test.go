package router

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"learnhub/internal/auth"
	"learnhub/internal/config"
	"learnhub/internal/handler"
	"learnhub/internal/model"
	"learnhub/internal/repository"
	"learnhub/internal/service"
)

const (
	testSecret     = "test-secret"
	testAdminEmail = "admin@learnhub.test"
	testAdminPass  = "boot-pw-123"
)

func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.Chapter{},
		&model.Course{},
		&model.ContentItem{},
		&model.UserProgress{},
		&model.UserActivity{},
		&model.SystemLog{},
		&model.UserSession{},
	))

	cfg := &config.Config{
		JWTSecret: testSecret,
		UploadDir: filepath.Join(dir, "uploads"),
	}
	log := zerolog.Nop()

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	contentRepo := repository.NewContentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	recorder := service.NewRecorder(activityRepo, log)
	authService := service.NewAuthService(userRepo, adminRepo, sessionRepo, jwtService, recorder, log)
	contentService := service.NewContentService(contentRepo, nil, cfg.UploadDir, log)
	progressService := service.NewProgressService(progressRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	adminService := service.NewAdminService(userRepo, adminRepo, contentRepo, progressRepo, activityRepo, sessionRepo, nil)

	require.NoError(t, authService.EnsureAdmin(t.Context(), "root", testAdminEmail, testAdminPass))

	e := echo.New()
	Register(e, cfg,
		handler.NewAuthHandler(authService),
		handler.NewContentHandler(contentService, catalogService),
		handler.NewProgressHandler(progressService),
		handler.NewAdminHandler(adminService),
	)
	return e
}

func signup(t *testing.T, app *echo.Echo, username, email, password string) {
	t.Helper()
	apitest.Handler(app).
		Post("/api/signup").
		JSON(map[string]string{"username": username, "email": email, "password": password}).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Present("$.token")).
		End()
}

func login(t *testing.T, app *echo.Echo, email, password string) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	apitest.Handler(app).
		Post("/api/login").
		JSON(map[string]string{"email": email, "password": password}).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func adminLogin(t *testing.T, app *echo.Echo) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	apitest.Handler(app).
		Post("/api/admin/login").
		JSON(map[string]string{"email": testAdminEmail, "password": testAdminPass}).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignupLoginFlow(t *testing.T) {
	app := newTestApp(t)

	signup(t, app, "alice", "a@x.com", "pw1pw1")

	apitest.Handler(app).
		Post("/api/login").
		JSON(map[string]string{"email": "a@x.com", "password": "pw1pw1"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.user.username", "alice")).
		Assert(jsonpath.Present("$.token")).
		End()

	apitest.Handler(app).
		Post("/api/login").
		JSON(map[string]string{"email": "a@x.com", "password": "wrong1"}).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "Invalid credentials")).
		End()
}

func TestSignupDuplicate(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice", "a@x.com", "pw1pw1")

	apitest.Handler(app).
		Post("/api/signup").
		JSON(map[string]string{"username": "alice", "email": "other@x.com", "password": "pw1pw1"}).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "User already exists")).
		End()
}

func TestSignupMissingFields(t *testing.T) {
	app := newTestApp(t)

	apitest.Handler(app).
		Post("/api/signup").
		JSON(map[string]string{"username": "alice"}).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestProfile(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice", "a@x.com", "pw1pw1")
	token := login(t, app, "a@x.com", "pw1pw1")

	apitest.Handler(app).
		Get("/api/profile").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.user.username", "alice")).
		End()
}

func TestUserGate(t *testing.T) {
	app := newTestApp(t)

	apitest.Handler(app).
		Get("/api/profile").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "Access token required")).
		End()

	apitest.Handler(app).
		Get("/api/profile").
		Header("Authorization", "Bearer not-a-token").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal("$.error", "Invalid token")).
		End()
}

func TestAdminGate(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice", "a@x.com", "pw1pw1")
	userToken := login(t, app, "a@x.com", "pw1pw1")

	// No header at all: 401.
	apitest.Handler(app).
		Get("/api/admin/users").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	// Valid token without the admin role: 403.
	apitest.Handler(app).
		Get("/api/admin/users").
		Header("Authorization", "Bearer "+userToken).
		Expect(t).
		Status(http.StatusForbidden).
		Assert(jsonpath.Equal("$.error", "Insufficient admin privileges")).
		End()
}

func TestAdminViews(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice", "a@x.com", "pw1pw1")
	adminToken := adminLogin(t, app)

	apitest.Handler(app).
		Get("/api/admin/users").
		Header("Authorization", "Bearer "+adminToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.users[0].username", "alice")).
		End()

	apitest.Handler(app).
		Get("/api/admin/stats").
		Header("Authorization", "Bearer "+adminToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.totalUsers", float64(1))).
		End()

	apitest.Handler(app).
		Get("/api/admin/dashboard").
		Header("Authorization", "Bearer "+adminToken).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.totalAdmins", float64(1))).
		End()
}

func TestProgressRoundTrip(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice", "a@x.com", "pw1pw1")
	token := login(t, app, "a@x.com", "pw1pw1")

	apitest.Handler(app).
		Post("/api/progress").
		Header("Authorization", "Bearer "+token).
		JSON(map[string]interface{}{"chapterId": 3, "progress": 40}).
		Expect(t).
		Status(http.StatusOK).
		End()

	// Same chapter again: overwritten, not duplicated.
	apitest.Handler(app).
		Post("/api/progress").
		Header("Authorization", "Bearer "+token).
		JSON(map[string]interface{}{"chapterId": 3, "progress": 90}).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(app).
		Get("/api/progress").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.progress", 1)).
		Assert(jsonpath.Equal("$.progress[0].progress", float64(90))).
		End()
}

func TestAdminContentLifecycle(t *testing.T) {
	app := newTestApp(t)
	adminToken := adminLogin(t, app)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Cell Notes"))
	require.NoError(t, w.WriteField("type", "note"))
	require.NoError(t, w.WriteField("content", "inline body"))
	require.NoError(t, w.WriteField("chapter_id", "1"))
	require.NoError(t, w.WriteField("is_premium", "true"))
	fw, err := w.CreateFormFile("file", "notes.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var created struct {
		ID      uint   `json:"id"`
		FileURL string `json:"fileUrl"`
	}
	apitest.Handler(app).
		Post("/api/admin/content").
		Header("Authorization", "Bearer "+adminToken).
		Header("Content-Type", w.FormDataContentType()).
		Body(body.String()).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&created)
	require.NotZero(t, created.ID)
	require.NotEmpty(t, created.FileURL)

	// Premium rows show up in the public listing; the flag is advisory.
	apitest.Handler(app).
		Get("/api/content").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.content", 1)).
		Assert(jsonpath.Equal("$.content[0].is_premium", true)).
		End()

	apitest.Handler(app).
		Delete("/api/admin/content/9999").
		Header("Authorization", "Bearer "+adminToken).
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.error", "Content not found")).
		End()

	apitest.Handler(app).
		Delete(fmt.Sprintf("/api/admin/content/%d", created.ID)).
		Header("Authorization", "Bearer "+adminToken).
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(app).
		Get("/api/content").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Len("$.content", 0)).
		End()
}

func TestUserControl(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "alice", "a@x.com", "pw1pw1")
	adminToken := adminLogin(t, app)

	apitest.Handler(app).
		Post("/api/admin/users/1/control").
		Header("Authorization", "Bearer "+adminToken).
		JSON(map[string]string{"action": "suspend"}).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.message", "User suspended successfully")).
		End()

	apitest.Handler(app).
		Post("/api/admin/users/1/control").
		Header("Authorization", "Bearer "+adminToken).
		JSON(map[string]string{"action": "nonsense"}).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.error", "Invalid action")).
		End()
}

func TestRouteNotFound(t *testing.T) {
	app := newTestApp(t)

	apitest.Handler(app).
		Get("/api/nope").
		Expect(t).
		Status(http.StatusNotFound).
		Assert(jsonpath.Equal("$.error", "Route not found")).
		End()
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	apitest.Handler(app).
		Get("/api/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "OK")).
		End()
}
