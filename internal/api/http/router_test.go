package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
)

// fakeUserRepo mirrors the version-guard contract of the Mongo repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ReplaceCart(_ context.Context, userID string, cart domain.Cart, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.Version != version {
		return repository.ErrVersionConflict
	}
	user.Cart = cart
	user.Version++
	return nil
}

func (r *fakeUserRepo) ReplaceAddresses(_ context.Context, userID string, addresses []domain.Address, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok || user.Version != version {
		return repository.ErrVersionConflict
	}
	user.Addresses = addresses
	user.Version++
	return nil
}

type fakeProductRepo struct {
	groups [][]domain.Product
}

func (r *fakeProductRepo) ListGroupedByDomain(context.Context) ([][]domain.Product, error) {
	return r.groups, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			BcryptCost: bcrypt.MinCost,
		},
	}

	userRepo := newFakeUserRepo()
	productRepo := &fakeProductRepo{groups: [][]domain.Product{
		{{ID: "p1", Name: "Apple", Domain: "fruit"}},
		{{ID: "p2", Name: "Carrot", Domain: "veg"}},
	}}

	accountService := service.NewAccountService(cfg, service.AccountDependencies{UserRepo: userRepo})
	cartService := service.NewCartService(userRepo, nil)
	addressService := service.NewAddressService(userRepo, nil)
	catalogService := service.NewCatalogService(productRepo, nil, 0, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("shop-service", "test", nil, nil),
		Accounts:  handlers.NewAccountsHandler(accountService),
		Cart:      handlers.NewCartHandler(cartService),
		Addresses: handlers.NewAddressHandler(addressService),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Session:   auth.NewSessionMiddleware(accountService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, path string, payload any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(http.MethodPost, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, body := doJSON(t, app, "/register", map[string]string{
		"Name": "A", "Email": "a@x.com", "Password": "Secret#1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, "/login", map[string]string{
		"Email": "a@x.com", "Password": "Secret#1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRootLiveness(t *testing.T) {
	app := newTestApp(t)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "API is running", string(raw))
}

func TestUnknownRouteReturnsEmpty404(t *testing.T) {
	app := newTestApp(t)

	req, err := http.NewRequest(http.MethodPost, "/noSuchRoute", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]string{"Name": "A", "Email": "a@x.com", "Password": "Secret#1"}
	resp, _ := doJSON(t, app, "/register", payload, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "/register", payload, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Existing User", body["errors"])
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)
	registerAndLogin(t, app)

	resp, body := doJSON(t, app, "/login", map[string]string{
		"Email": "a@x.com", "Password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Wrong Password", body["errors"])

	resp, body = doJSON(t, app, "/login", map[string]string{
		"Email": "ghost@x.com", "Password": "Secret#1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User Not Found", body["errors"])
}

func TestCartFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)
	header := map[string]string{auth.TokenHeader: token}

	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, "/addToCart", map[string]string{"product_id": "p1"}, header)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, true, body["success"])
	}

	// Read endpoint takes the token as a body field, not a header.
	resp, body := doJSON(t, app, "/getDefaultCart", map[string]string{"token": token}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart, ok := body["Cart"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), cart["p1"])

	resp, _ = doJSON(t, app, "/removeFromCart", map[string]string{"product_id": "p1"}, header)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, "/removeFromCart", map[string]string{"product_id": "p1"}, header)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, "/getDefaultCart", map[string]string{"token": token}, nil)
	cart, ok = body["Cart"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, cart, "p1")

	resp, _ = doJSON(t, app, "/deleteFromCart", map[string]string{"product_id": "p1"}, header)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAddressFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)
	header := map[string]string{auth.TokenHeader: token}

	resp, _ := doJSON(t, app, "/addAddress", map[string]string{"city": "first"}, header)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, "/addAddress", map[string]string{"city": "second"}, header)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	editHeaders := map[string]string{auth.TokenHeader: token, handlers.IndexHeader: "1"}
	resp, _ = doJSON(t, app, "/editAddress", map[string]string{"city": "patched"}, editHeaders)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "/getAddress", map[string]string{"token": token}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	addresses, ok := body["Address"].([]any)
	require.True(t, ok)
	require.Len(t, addresses, 2)
	second, ok := addresses[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "patched", second["city"])

	resp, _ = doJSON(t, app, "/delAddress", map[string]int{"index": 0}, header)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = doJSON(t, app, "/getAddress", map[string]string{"token": token}, nil)
	addresses, ok = body["Address"].([]any)
	require.True(t, ok)
	require.Len(t, addresses, 1)
	remaining, ok := addresses[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "patched", remaining["city"])
}

func TestMissingTokenRejected(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "/addToCart", map[string]string{"product_id": "p1"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Please pass a token", body["errors"])
}

func TestInvalidTokenRejected(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "/addToCart", map[string]string{"product_id": "p1"},
		map[string]string{auth.TokenHeader: "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestGetAllProducts(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "/getAllProducts", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	groups, ok := body["Products"].([]any)
	require.True(t, ok)
	require.Len(t, groups, 2)

	first, ok := groups[0].([]any)
	require.True(t, ok)
	require.Len(t, first, 1)
	product, ok := first[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Apple", product["name"])
	assert.NotContains(t, product, "domain")
}
