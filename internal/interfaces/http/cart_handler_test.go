package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faraz011/virasat2/internal/application/cart"
	"github.com/Faraz011/virasat2/internal/application/dto"
	"github.com/Faraz011/virasat2/internal/domain/entity"
	"github.com/Faraz011/virasat2/internal/domain/repository"
	apihttp "github.com/Faraz011/virasat2/internal/interfaces/http"
)

// Minimal in-memory cart backend. The fixture mutex stands in for the
// product row lock: the tx runner holds it across each mutation.
type cartFixture struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	lines    map[string]*entity.CartLine
}

func (f *cartFixture) addProduct(stock int) string {
	id := uuid.New().String()
	f.products[id] = &entity.Product{
		ID:            id,
		Slug:          "p-" + id[:8],
		Name:          "Test Saree",
		Price:         decimal.NewFromInt(2500),
		StockQuantity: stock,
	}
	return id
}

func (f *cartFixture) Run(_ context.Context, fn func(repository.CartRepository, repository.ProductRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn((*fixtureCartRepo)(f), (*fixtureProductRepo)(f))
}

type fixtureCartRepo cartFixture

func (r *fixtureCartRepo) ListByAccount(accountID string) ([]*entity.CartLineDetail, error) {
	var out []*entity.CartLineDetail
	for _, l := range r.lines {
		if l.AccountID == accountID {
			p := r.products[l.ProductID]
			out = append(out, &entity.CartLineDetail{CartLine: *l, Name: p.Name, Price: p.Price, Slug: p.Slug})
		}
	}
	return out, nil
}

func (r *fixtureCartRepo) GetByAccountAndProduct(accountID, productID string) (*entity.CartLine, error) {
	for _, l := range r.lines {
		if l.AccountID == accountID && l.ProductID == productID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fixtureCartRepo) GetByIDAndAccount(id, accountID string) (*entity.CartLine, error) {
	if l, ok := r.lines[id]; ok && l.AccountID == accountID {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fixtureCartRepo) Create(line *entity.CartLine) error {
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fixtureCartRepo) UpdateQuantity(id string, quantity int) error {
	if l, ok := r.lines[id]; ok {
		l.Quantity = quantity
	}
	return nil
}

func (r *fixtureCartRepo) Delete(id, accountID string) error {
	if l, ok := r.lines[id]; ok && l.AccountID == accountID {
		delete(r.lines, id)
	}
	return nil
}

func (r *fixtureCartRepo) DeleteByAccount(accountID string) error {
	for id, l := range r.lines {
		if l.AccountID == accountID {
			delete(r.lines, id)
		}
	}
	return nil
}

type fixtureProductRepo cartFixture

func (r *fixtureProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fixtureProductRepo) GetByID(id string) (*entity.Product, error) { return r.GetForUpdate(id) }

func (r *fixtureProductRepo) Create(*entity.Product) error              { return nil }
func (r *fixtureProductRepo) Update(*entity.Product) error              { return nil }
func (r *fixtureProductRepo) GetBySlug(string) (*entity.Product, error) { return nil, nil }
func (r *fixtureProductRepo) ListFeatured(int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fixtureProductRepo) ListNew(int) ([]*entity.Product, error)  { return nil, nil }
func (r *fixtureProductRepo) ListSale(int) ([]*entity.Product, error) { return nil, nil }
func (r *fixtureProductRepo) ListByCategorySlug(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fixtureProductRepo) Search(string, int) ([]*entity.Product, error) { return nil, nil }
func (r *fixtureProductRepo) ListImages(string) ([]*entity.ProductImage, error) {
	return nil, nil
}

// lockingCartRepo is the "outside a transaction" view used for reads and
// deletes; it takes the fixture mutex per call.
type lockingCartRepo struct{ f *cartFixture }

func (r *lockingCartRepo) ListByAccount(accountID string) ([]*entity.CartLineDetail, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).ListByAccount(accountID)
}

func (r *lockingCartRepo) GetByAccountAndProduct(accountID, productID string) (*entity.CartLine, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).GetByAccountAndProduct(accountID, productID)
}

func (r *lockingCartRepo) GetByIDAndAccount(id, accountID string) (*entity.CartLine, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).GetByIDAndAccount(id, accountID)
}

func (r *lockingCartRepo) Create(line *entity.CartLine) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).Create(line)
}

func (r *lockingCartRepo) UpdateQuantity(id string, quantity int) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).UpdateQuantity(id, quantity)
}

func (r *lockingCartRepo) Delete(id, accountID string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).Delete(id, accountID)
}

func (r *lockingCartRepo) DeleteByAccount(accountID string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return (*fixtureCartRepo)(r.f).DeleteByAccount(accountID)
}

func newCartApp(t *testing.T) (*fiber.App, *cartFixture) {
	t.Helper()
	fixture := &cartFixture{
		products: make(map[string]*entity.Product),
		lines:    make(map[string]*entity.CartLine),
	}
	uc := cart.NewUseCase(fixture, &lockingCartRepo{f: fixture}, cart.NopPublisher{})
	handler := apihttp.NewCartHandler(uc)

	app := fiber.New()
	group := app.Group("/api/cart")
	group.Get("/", apihttp.OptionalAuth(testSecret), handler.Get)
	group.Post("/items", apihttp.AuthMiddleware(testSecret), handler.AddItem)
	group.Patch("/items/:id", apihttp.AuthMiddleware(testSecret), handler.UpdateItem)
	group.Delete("/items/:id", apihttp.AuthMiddleware(testSecret), handler.RemoveItem)
	group.Delete("/", apihttp.AuthMiddleware(testSecret), handler.Clear)
	return app, fixture
}

func cartRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeCart(t *testing.T, resp *http.Response) dto.CartResponse {
	t.Helper()
	var out dto.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCartGet_NoSessionReturnsEmptyView(t *testing.T) {
	app, _ := newCartApp(t)

	resp, err := app.Test(cartRequest(t, http.MethodGet, "/api/cart/", "", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeCart(t, resp)
	assert.Empty(t, out.Items)
	assert.True(t, out.Subtotal.IsZero())
}

func TestCartMutation_NoSessionIs401(t *testing.T) {
	app, fixture := newCartApp(t)
	product := fixture.addProduct(5)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", "",
		dto.AddCartItemRequest{ProductID: product, Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartAddItem(t *testing.T) {
	app, fixture := newCartApp(t)
	product := fixture.addProduct(5)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: product, Quantity: 2}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeCart(t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(5000)))
}

func TestCartAddItem_DefaultsQuantityToOne(t *testing.T) {
	app, fixture := newCartApp(t)
	product := fixture.addProduct(5)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: product}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeCart(t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Items[0].Quantity)
}

func TestCartAddItem_MissingProductID(t *testing.T) {
	app, _ := newCartApp(t)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp.Body)["code"])
}

func TestCartAddItem_UnknownProductIs404(t *testing.T) {
	app, _ := newCartApp(t)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: uuid.New().String(), Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp.Body)["code"])
}

func TestCartAddItem_InsufficientStockIs409(t *testing.T) {
	app, fixture := newCartApp(t)
	product := fixture.addProduct(5)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: product, Quantity: 3}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: product, Quantity: 3}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeBody(t, resp.Body)["code"])

	// The failed add must not have bumped the line.
	resp, err = app.Test(cartRequest(t, http.MethodGet, "/api/cart/", token, nil))
	require.NoError(t, err)
	out := decodeCart(t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 3, out.Items[0].Quantity)
}

func TestCartUpdateItem_ZeroRemovesLine(t *testing.T) {
	app, fixture := newCartApp(t)
	product := fixture.addProduct(5)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: product, Quantity: 2}))
	require.NoError(t, err)
	lineID := decodeCart(t, resp).Items[0].ID

	resp, err = app.Test(cartRequest(t, http.MethodPatch, "/api/cart/items/"+lineID, token,
		dto.UpdateCartItemRequest{Quantity: 0}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeCart(t, resp).Items)
}

func TestCartUpdateItem_UnknownLineIs404(t *testing.T) {
	app, _ := newCartApp(t)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPatch, "/api/cart/items/"+uuid.New().String(), token,
		dto.UpdateCartItemRequest{Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartRemoveItem_Idempotent(t *testing.T) {
	app, fixture := newCartApp(t)
	product := fixture.addProduct(5)
	token := signToken(t, "acc-1", false)

	resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
		dto.AddCartItemRequest{ProductID: product, Quantity: 1}))
	require.NoError(t, err)
	lineID := decodeCart(t, resp).Items[0].ID

	for i := 0; i < 2; i++ {
		resp, err = app.Test(cartRequest(t, http.MethodDelete, "/api/cart/items/"+lineID, token, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, decodeCart(t, resp).Items)
	}
}

func TestCartClear(t *testing.T) {
	app, fixture := newCartApp(t)
	p1 := fixture.addProduct(5)
	p2 := fixture.addProduct(5)
	token := signToken(t, "acc-1", false)

	for _, p := range []string{p1, p2} {
		resp, err := app.Test(cartRequest(t, http.MethodPost, "/api/cart/items", token,
			dto.AddCartItemRequest{ProductID: p, Quantity: 1}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(cartRequest(t, http.MethodDelete, "/api/cart/", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeCart(t, resp).Items)

	// Clearing again (empty cart) still succeeds.
	resp, err = app.Test(cartRequest(t, http.MethodDelete, "/api/cart/", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
