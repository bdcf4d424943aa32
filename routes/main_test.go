package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"
	"github.com/ruzzidanali/smashit/utils"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redismock/v8"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// setupTestDB swaps storage.DB for a fresh in-memory sqlite database.
// MaxOpenConns(1) keeps the whole pool on the single in-memory
// connection so every query sees the migrated schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	storage.Migrate(db)
	storage.DB = db
	return db
}

// newTestApp builds the same route tree main.go serves, against the
// test database and a mock Redis.
func newTestApp(t *testing.T) *iris.Application {
	t.Helper()

	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	setupTestDB(t)

	redisClient, _ := redismock.NewClientMock()
	storage.Redis = redisClient

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", Register)
		auth.Post("/login", Login)
		auth.Get("/me", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, Me)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware)
	{
		admin.Get("/business", GetAdminBusiness)
		admin.Get("/business/profile", GetBusinessProfile)
		admin.Put("/business/profile", UpdateBusinessProfile)
		admin.Get("/courts", AdminListCourts)
		admin.Post("/courts", AdminCreateCourt)
		admin.Put("/courts/{id:uint}", AdminUpdateCourt)
		admin.Get("/bookings", AdminListBookings)
		admin.Delete("/bookings/{id:uint}", AdminCancelBooking)
		admin.Patch("/bookings/{id:uint}/payment", AdminUpdatePaymentStatus)
	}

	public := app.Party("/api/public")
	{
		public.Get("/businesses", ListPublicBusinesses)
		public.Get("/locations/states", ListStates)
		public.Get("/locations/cities", ListCities)
	}

	b := app.Party("/api/b/{slug}")
	{
		b.Get("/courts", PublicListCourts)
		b.Get("/availability", GetAvailability)
		b.Post("/bookings", CreateBooking)
		b.Get("/my-bookings", ListMyBookings)
		b.Delete("/my-bookings/{id:uint}", CancelMyBooking)
		b.Post("/my-bookings/{id:uint}/payment-proof", UploadPaymentProof)
	}

	// ServeHTTP needs the router built; app.Listen normally does this.
	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	return app
}

// seedBusiness inserts a business with a court and an owner, returning
// a signed access token for the owner.
func seedBusiness(t *testing.T, name, slug string) (models.Business, models.Court, string) {
	t.Helper()

	business := models.Business{Name: name, Slug: slug}
	if err := storage.DB.Create(&business).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}

	court := models.Court{BusinessID: business.ID, Name: "Court A", IsActive: true}
	if err := storage.DB.Create(&court).Error; err != nil {
		t.Fatalf("seed court: %v", err)
	}

	user := models.User{
		Email:      slug + "@example.com",
		Password:   "x",
		Role:       models.RoleOwner,
		BusinessID: business.ID,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	pair, err := utils.CreateTokenPair(user)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return business, court, string(pair.AccessToken)
}

func doJSON(t *testing.T, app *iris.Application, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
}

func TestHealthlessRouteTree(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/public/businesses", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from empty business listing, got %d", resp.Code)
	}
	if resp.Body.String() == "" {
		t.Fatal("expected a JSON body")
	}
}
