package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/web"
)

type testEnv struct {
	T          *testing.T
	E          *echo.Echo
	DB         *gorm.DB
	Storefront *StorefrontHTTP
	Admin      *AdminHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
		return nil
	}

	// one shared connection, otherwise every pooled conn gets its own
	// empty memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := repo.NewGormRepo(db)
	catalog := &service.CatalogService{Repo: r}
	cart := &service.CartService{Repo: r}
	orders := &service.OrderService{Repo: r}

	e := echo.New()
	e.Renderer = &TemplateRenderer{Templates: web.Templates()}

	env := &testEnv{
		T:  t,
		E:  e,
		DB: db,
		Storefront: &StorefrontHTTP{
			Catalog:  catalog,
			Cart:     cart,
			Producer: &mykafka.Producer{},
		},
		Admin: &AdminHTTP{
			Catalog:  catalog,
			Orders:   orders,
			Producer: &mykafka.Producer{},
		},
	}

	Register(e, &Deps{
		Storefront:    env.Storefront,
		Admin:         env.Admin,
		SessionSecret: []byte("test_secret"),
	})

	return env
}

// doJSONRequest builds a context for calling a handler directly, without
// going through the router.
func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// doPage sends a GET through the full router so the session middleware
// and renderer run, the way a browser would hit the storefront.
func (env *testEnv) doPage(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedProduct(name, price string) models.Product {
	env.T.Helper()

	category := models.Category{Name: "Drinks"}
	require.NoError(env.T, env.DB.Where(&models.Category{Name: "Drinks"}).FirstOrCreate(&category).Error)

	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: "test_description",
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", session.CookieName)
	return nil
}
