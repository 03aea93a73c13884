package producthunt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/product-hunt/internal/cache"
	"github.com/magabrotheeeer/product-hunt/internal/config"
	"github.com/magabrotheeeer/product-hunt/internal/lib/jwt"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	authservice "github.com/magabrotheeeer/product-hunt/internal/services/auth"
	couponservice "github.com/magabrotheeeer/product-hunt/internal/services/coupon"
	paymentservice "github.com/magabrotheeeer/product-hunt/internal/services/payment"
	productservice "github.com/magabrotheeeer/product-hunt/internal/services/product"
	reviewservice "github.com/magabrotheeeer/product-hunt/internal/services/review"
	statsservice "github.com/magabrotheeeer/product-hunt/internal/services/stats"
	userservice "github.com/magabrotheeeer/product-hunt/internal/services/user"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

type (
	couponRepo  interface{ couponservice.Repository }
	paymentRepo interface{ paymentservice.Repository }
)

// memStore хранилище в памяти для сквозных тестов роутера.
// Купоны и платежи в этих сценариях не используются.
type memStore struct {
	couponRepo
	paymentRepo

	mu       sync.Mutex
	users    map[string]models.User
	products map[uuid.UUID]models.Product
	reviews  []models.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]models.User),
		products: make(map[uuid.UUID]models.Product),
	}
}

func (m *memStore) addUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	m.users[u.Email] = u
}

func (m *memStore) CreateUser(_ context.Context, u models.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return "", storage.ErrAlreadyExists
	}
	u.ID = uuid.NewString()
	m.users[u.Email] = u
	return u.ID, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) ListUsersExcept(_ context.Context, email string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if u.Email != email {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memStore) userByID(id uuid.UUID) (string, bool) {
	for email, u := range m.users {
		if u.ID == id.String() {
			return email, true
		}
	}
	return "", false
}

func (m *memStore) UpdateSubscription(_ context.Context, id uuid.UUID, upd models.SubscriptionUpdate) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.userByID(id)
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	u := m.users[email]
	u.IsSubscribed = upd.IsSubscribed
	u.SubscriptionDate = upd.SubscriptionDate
	u.PaymentVerified = upd.PaymentVerified
	u.Status = upd.Status
	m.users[email] = u
	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memStore) UpdateRole(_ context.Context, id uuid.UUID, role string) (models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.userByID(id)
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	u := m.users[email]
	u.Role = role
	m.users[email] = u
	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *memStore) CountUsers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memStore) CreateProduct(_ context.Context, p models.Product) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	p.ID = id.String()
	p.Timestamp = time.Now().UTC()
	m.products[id] = p
	return p.ID, nil
}

func (m *memStore) GetProduct(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) filter(keep func(models.Product) bool) []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func all(models.Product) bool { return true }

func (m *memStore) ListProducts(_ context.Context) ([]models.Product, error) {
	return m.filter(all), nil
}

func (m *memStore) ListRecentProducts(_ context.Context) ([]models.Product, error) {
	return m.filter(all), nil
}

func (m *memStore) ListProductsPage(_ context.Context, limit, offset int) ([]models.Product, error) {
	list := m.filter(all)
	if offset >= len(list) {
		return []models.Product{}, nil
	}
	if limit == 0 {
		return list[offset:], nil
	}
	end := min(offset+limit, len(list))
	return list[offset:end], nil
}

func (m *memStore) SearchProductsByTag(_ context.Context, pattern string) ([]models.Product, error) {
	return m.filter(func(p models.Product) bool {
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), strings.ToLower(pattern)) {
				return true
			}
		}
		return false
	}), nil
}

func (m *memStore) ListProductsByOwner(_ context.Context, email string) ([]models.Product, error) {
	return m.filter(func(p models.Product) bool { return p.OwnerEmail == email }), nil
}

func (m *memStore) ListProductsForReview(_ context.Context) ([]models.Product, error) {
	return m.filter(all), nil
}

func (m *memStore) ListReportedProducts(_ context.Context) ([]models.Product, error) {
	return m.filter(func(p models.Product) bool { return p.ReportedStatus == models.ReportedStatus }), nil
}

func (m *memStore) CountProductsByOwner(ctx context.Context, email string) (int, error) {
	list, _ := m.ListProductsByOwner(ctx, email)
	return len(list), nil
}

func (m *memStore) CountProducts(_ context.Context, status string) (int, error) {
	return len(m.filter(func(p models.Product) bool { return status == "" || p.Status == status })), nil
}

func (m *memStore) TotalProducts(_ context.Context) (int64, error) {
	return int64(len(m.filter(all))), nil
}

func (m *memStore) modify(id uuid.UUID, fn func(*models.Product)) (*models.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, false
	}
	fn(&p)
	m.products[id] = p
	return &p, true
}

func (m *memStore) IncrementVote(_ context.Context, id uuid.UUID, email string) (*models.Product, error) {
	p, ok := m.modify(id, func(p *models.Product) {
		p.Votes++
		p.VotedUser = email
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

func (m *memStore) IncrementReport(_ context.Context, id uuid.UUID, email string) (*models.Product, error) {
	p, ok := m.modify(id, func(p *models.Product) {
		p.Report++
		p.ReportedUser = email
		p.ReportedStatus = models.ReportedStatus
	})
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

func updated(ok bool) models.UpdateResult {
	if !ok {
		return models.UpdateResult{Acknowledged: true}
	}
	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}
}

func (m *memStore) SetProductStatus(_ context.Context, id uuid.UUID, status string) (models.UpdateResult, error) {
	_, ok := m.modify(id, func(p *models.Product) { p.Status = status })
	return updated(ok), nil
}

func (m *memStore) SetProductFeatured(_ context.Context, id uuid.UUID) (models.UpdateResult, error) {
	_, ok := m.modify(id, func(p *models.Product) { p.IsFeatured = true })
	return updated(ok), nil
}

func (m *memStore) UpdateProduct(_ context.Context, id uuid.UUID, patch models.ProductPatch) (models.UpdateResult, error) {
	_, ok := m.modify(id, func(p *models.Product) {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Tags != nil {
			p.Tags = patch.Tags
		}
	})
	return updated(ok), nil
}

func (m *memStore) DeleteProduct(_ context.Context, id uuid.UUID) (models.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.products, id)
	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *memStore) CreateReview(_ context.Context, r models.Review) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	m.reviews = append(m.reviews, r)
	return r.ID, nil
}

func (m *memStore) ListReviewsByProduct(_ context.Context, productID uuid.UUID) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID.String() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) CountReviews(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reviews), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, message any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := message.(models.Event); ok {
		p.events = append(p.events, e)
	}
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name)
	}
	return out
}

type stubProvider struct{}

func (stubProvider) CreateIntent(_ context.Context, _ int64) (string, error) {
	return "pi_secret", nil
}

type testEnv struct {
	router http.Handler
	store  *memStore
	events *recordingPublisher
	maker  *jwt.Manager
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisCache, err := cache.InitServer(context.Background(), config.RedisConnection{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemStore()
	events := &recordingPublisher{}
	maker := jwt.NewManager("test-secret", time.Hour)

	svc := Services{
		Auth:     authservice.NewService(maker, logger),
		Tokens:   maker,
		Users:    userservice.NewService(store, logger),
		Products: productservice.NewService(store, store, redisCache, events, time.Minute, logger),
		Reviews:  reviewservice.NewService(store, logger),
		Coupons:  couponservice.NewService(store, logger),
		Payments: paymentservice.New(store, stubProvider{}, events, logger),
		Stats:    statsservice.NewService(store),
	}

	r := chi.NewRouter()
	RegisterRoutes(r, logger, svc, config.RateLimit{RPS: 100, Burst: 100})

	return &testEnv{router: r, store: store, events: events, maker: maker}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func (e *testEnv) createProduct(t *testing.T, owner string) string {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/products", "", models.DummyProduct{
		Name:       "Linear",
		OwnerEmail: owner,
		Tags:       []string{"productivity"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res models.InsertResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Acknowledged)
	return res.InsertedID
}

func TestRoot(t *testing.T) {
	env := setupRouter(t)

	rr := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Product hunt website", rr.Body.String())

	rr = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAdminRouteRequiresRole(t *testing.T) {
	env := setupRouter(t)
	env.store.addUser(models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	env.store.addUser(models.User{Email: "alice@example.com"})

	rr := env.do(t, http.MethodGet, "/all-user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodGet, "/all-user", env.token(t, "stranger@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodGet, "/all-user", env.token(t, "alice@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodGet, "/all-user", env.token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[0].Email)
}

func TestRoleInTokenIsIgnored(t *testing.T) {
	env := setupRouter(t)
	env.store.addUser(models.User{Email: "alice@example.com"})

	rr := env.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": "alice@example.com", "role": "admin"})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	rr = env.do(t, http.MethodGet, "/admin-state", resp["token"], nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestProductQuota(t *testing.T) {
	env := setupRouter(t)
	env.store.addUser(models.User{Email: "owner@example.com"})

	env.createProduct(t, "owner@example.com")

	rr := env.do(t, http.MethodPost, "/products", "", models.DummyProduct{
		Name:       "Second",
		OwnerEmail: "owner@example.com",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"Error"`)

	rr = env.do(t, http.MethodGet, "/all-product-count", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":1}`, rr.Body.String())
}

func TestVoteOnce(t *testing.T) {
	env := setupRouter(t)
	env.store.addUser(models.User{Email: "owner@example.com"})
	id := env.createProduct(t, "owner@example.com")

	body := models.ActorRequest{UserEmail: "voter@example.com"}

	rr := env.do(t, http.MethodPatch, "/products/vote/"+id, "", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"votes":1`)

	rr = env.do(t, http.MethodPatch, "/products/vote/"+id, "", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already voted")

	rr = env.do(t, http.MethodPatch, "/products/vote/"+id, "", models.ActorRequest{UserEmail: "other@example.com"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/get-product/"+id, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var p models.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 2, p.Votes)
	assert.Equal(t, "other@example.com", p.VotedUser)
}

func TestReportOnce(t *testing.T) {
	env := setupRouter(t)
	env.store.addUser(models.User{Email: "owner@example.com"})
	env.store.addUser(models.User{Email: "mod@example.com", Role: models.RoleModerator})
	id := env.createProduct(t, "owner@example.com")

	body := models.ActorRequest{UserEmail: "reporter@example.com"}

	rr := env.do(t, http.MethodPatch, "/products/report/"+id, "", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"report":1`)
	assert.Contains(t, rr.Body.String(), `"reportedStatus":"reported"`)

	rr = env.do(t, http.MethodPatch, "/products/report/"+id, "", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already report")

	rr = env.do(t, http.MethodPatch, "/products/report/"+id, "", models.ActorRequest{UserEmail: "other@example.com"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPatch, "/products/report/"+uuid.NewString(), "", body)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/get-product/"+id, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var p models.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 2, p.Report)
	assert.Equal(t, "other@example.com", p.ReportedUser)

	rr = env.do(t, http.MethodGet, "/product-reported", env.token(t, "mod@example.com"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var reported []models.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reported))
	require.Len(t, reported, 1)
	assert.Equal(t, id, reported[0].ID)
}

func TestPagination(t *testing.T) {
	env := setupRouter(t)
	for _, owner := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		env.store.addUser(models.User{Email: owner})
		env.createProduct(t, owner)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"?page=1&size=2", 1},
		{"?page=0&size=2", 2},
		{"", 3},
		{"?page=5&size=0", 3},
	}
	for _, tt := range tests {
		rr := env.do(t, http.MethodGet, "/product-pagination"+tt.query, "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var got []models.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, tt.want, tt.query)
	}
}

func TestModeration(t *testing.T) {
	env := setupRouter(t)
	env.store.addUser(models.User{Email: "owner@example.com"})
	env.store.addUser(models.User{Email: "mod@example.com", Role: models.RoleModerator})
	id := env.createProduct(t, "owner@example.com")
	token := env.token(t, "mod@example.com")

	// прогреваем кэш карточки
	rr := env.do(t, http.MethodGet, "/product-details/"+id, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPatch, "/product/reviewQueue-update/"+id, "", models.ModerationRequest{Status: models.StatusAccepted})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodPatch, "/product/reviewQueue-update/"+id, token, models.ModerationRequest{Status: models.StatusAccepted})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"matchedCount":1`)

	rr = env.do(t, http.MethodPatch, "/product/reviewQueue-update/"+id, token, models.ModerationRequest{Status: "somethingElse"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/product-details/"+id, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var p models.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, models.StatusAccepted, p.Status)
	assert.True(t, p.IsFeatured)

	assert.Equal(t, []string{models.EventProductCreated, models.EventProductModerated}, env.events.names())
}

func TestMalformedProductID(t *testing.T) {
	env := setupRouter(t)

	rr := env.do(t, http.MethodGet, "/get-product/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"Error","message":"invalid id"}`, rr.Body.String())
}

func TestUserLifecycle(t *testing.T) {
	env := setupRouter(t)

	rr := env.do(t, http.MethodGet, "/user/bob@example.com", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))

	rr = env.do(t, http.MethodPost, "/user/bob@example.com", "", models.DummyUser{Name: "Bob"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"acknowledged":true`)

	rr = env.do(t, http.MethodPost, "/user/bob@example.com", "", models.DummyUser{Name: "Bob"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"bob@example.com"`)

	rr = env.do(t, http.MethodGet, "/user/role/bob@example.com", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"role":""}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/user/role/ghost@example.com", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
