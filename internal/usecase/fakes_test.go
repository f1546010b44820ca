package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"kickstreet/internal/data/entity"
	"kickstreet/internal/data/repository"
	"kickstreet/pkg/mailer"
	"kickstreet/pkg/payment"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ==================== IN-MEMORY STORE ====================

// memStore backs every fake repository. Transactions serialise on txMu and roll back by
// restoring a snapshot.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users    map[uuid.UUID]*entity.User
	sessions map[string]*entity.Session
	products map[uuid.UUID]*entity.Product
	sliders  map[uuid.UUID]*entity.Slider
	orders   []*entity.Order
	subs     map[string]*entity.NewsletterSubscriber
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[string]*entity.Session),
		products: make(map[uuid.UUID]*entity.Product),
		sliders:  make(map[uuid.UUID]*entity.Slider),
		subs:     make(map[string]*entity.NewsletterSubscriber),
	}
}

type memSnapshot struct {
	users    map[uuid.UUID]*entity.User
	sessions map[string]*entity.Session
	products map[uuid.UUID]*entity.Product
	sliders  map[uuid.UUID]*entity.Slider
	orders   []*entity.Order
	subs     map[string]*entity.NewsletterSubscriber
}

func cloneMap[K comparable, V any](in map[K]*V) map[K]*V {
	out := make(map[K]*V, len(in))
	for k, v := range in {
		c := *v
		out[k] = &c
	}
	return out
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]*entity.Order, len(m.orders))
	for i, o := range m.orders {
		c := *o
		orders[i] = &c
	}
	return memSnapshot{
		users:    cloneMap(m.users),
		sessions: cloneMap(m.sessions),
		products: cloneMap(m.products),
		sliders:  cloneMap(m.sliders),
		orders:   orders,
		subs:     cloneMap(m.subs),
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users, m.sessions, m.products = s.users, s.sessions, s.products
	m.sliders, m.orders, m.subs = s.sliders, s.orders, s.subs
}

// repository wires fakes over the store into the shape services expect.
func (m *memStore) repository() *repository.Repository {
	repo := m.bound()
	repo.Tx = &memTx{store: m}
	return repo
}

func (m *memStore) bound() *repository.Repository {
	return &repository.Repository{
		User:       &fakeUserRepo{m},
		Session:    &fakeSessionRepo{m},
		Product:    &fakeProductRepo{m},
		Slider:     &fakeSliderRepo{m},
		Order:      &fakeOrderRepo{m},
		Newsletter: &fakeNewsletterRepo{m},
		Stats:      &fakeStatsRepo{m},
	}
}

type memTx struct {
	store *memStore
}

func (t *memTx) WithinTx(_ context.Context, fn func(repo *repository.Repository) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	repo := t.store.bound()
	repo.Tx = joinedTx{repo: repo}

	if err := fn(repo); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type joinedTx struct {
	repo *repository.Repository
}

func (j joinedTx) WithinTx(_ context.Context, fn func(repo *repository.Repository) error) error {
	return fn(j.repo)
}

// ==================== USERS ====================

type fakeUserRepo struct{ m *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	c := *user
	r.m.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) *entity.User {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if match(u) {
			c := *u
			return &c
		}
	}
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Phone == phone }), nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	all := make([]*entity.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		c := *u
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.users)), nil
}

func (r *fakeUserRepo) update(id uuid.UUID, fn func(*entity.User)) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	fn(u)
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	return r.update(user.ID, func(u *entity.User) {
		u.Name, u.Phone, u.ShippingAddress = user.Name, user.Phone, user.ShippingAddress
	})
}

func (r *fakeUserRepo) SetOTP(_ context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	return r.update(id, func(u *entity.User) { u.OTP, u.OTPExpiresAt = &otp, &expiresAt })
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(u *entity.User) { u.IsVerified, u.OTP, u.OTPExpiresAt = true, nil, nil })
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, id uuid.UUID, hash string) error {
	return r.update(id, func(u *entity.User) { u.PasswordHash, u.OTP, u.OTPExpiresAt = hash, nil, nil })
}

func (r *fakeUserRepo) SetRole(_ context.Context, id uuid.UUID, role entity.UserRole) error {
	return r.update(id, func(u *entity.User) { u.Role = role })
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.users, id)
	return nil
}

// ==================== SESSIONS ====================

type fakeSessionRepo struct{ m *memStore }

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *s
	r.m.sessions[s.TokenID] = &c
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, tokenID string) (*entity.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[tokenID]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, tokenID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[tokenID]
	if !ok || s.RevokedAt != nil {
		return errors.New("session not found")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := time.Now()
	for _, s := range r.m.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(_ context.Context) (int64, error) {
	return 0, nil
}

// ==================== PRODUCTS ====================

type fakeProductRepo struct{ m *memStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.products {
		if existing.Slug == p.Slug {
			return repository.ErrDuplicate
		}
	}
	c := *p
	r.m.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.products {
		if p.Slug == slug {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make(map[uuid.UUID]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.m.products[id]; ok {
			c := *p
			out[id] = &c
		}
	}
	return out, nil
}

func (r *fakeProductRepo) filtered(filter repository.ProductFilter) []*entity.Product {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeProductRepo) FindAll(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return page(r.filtered(filter), filter.Limit, filter.Offset), nil
}

func (r *fakeProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int64, error) {
	return int64(len(r.filtered(filter))), nil
}

func (r *fakeProductRepo) Latest(_ context.Context, n int) ([]*entity.Product, error) {
	return page(r.filtered(repository.ProductFilter{}), n, 0), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[p.ID]; !ok {
		return errors.New("product not found")
	}
	c := *p
	r.m.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *fakeProductRepo) DecrementStockFloor(_ context.Context, id uuid.UUID, qty int) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return qty, nil
	}
	shortfall := 0
	if p.Stock < qty {
		shortfall = qty - p.Stock
	}
	p.Stock = max(p.Stock-qty, 0)
	return shortfall, nil
}

// ==================== SLIDERS ====================

type fakeSliderRepo struct{ m *memStore }

func (r *fakeSliderRepo) Lock(context.Context) error { return nil }

func (r *fakeSliderRepo) Count(context.Context) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(r.m.sliders), nil
}

func (r *fakeSliderRepo) Create(_ context.Context, s *entity.Slider) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *s
	r.m.sliders[s.ID] = &c
	return nil
}

func (r *fakeSliderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Slider, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sliders[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *fakeSliderRepo) FindAll(_ context.Context, activeOnly bool) ([]*entity.Slider, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Slider
	for _, s := range r.m.sliders {
		if activeOnly && !s.IsActive {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeSliderRepo) Update(_ context.Context, s *entity.Slider) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *s
	r.m.sliders[s.ID] = &c
	return nil
}

func (r *fakeSliderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.sliders, id)
	return nil
}

// ==================== ORDERS ====================

type fakeOrderRepo struct{ m *memStore }

// missingProduct mirrors the order_items foreign key on products. Callers hold mu.
func (r *fakeOrderRepo) missingProduct(o *entity.Order) error {
	for _, item := range o.Items {
		if item.ProductID == nil {
			continue
		}
		if _, ok := r.m.products[*item.ProductID]; !ok {
			return fmt.Errorf("insert order item: product %s does not exist", item.ProductID)
		}
	}
	return nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.missingProduct(o); err != nil {
		return err
	}
	c := *o
	r.m.orders = append(r.m.orders, &c)
	return nil
}

func (r *fakeOrderRepo) CreateIfAbsent(_ context.Context, o *entity.Order) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.orders {
		if existing.PaymentSessionID != nil && o.PaymentSessionID != nil && *existing.PaymentSessionID == *o.PaymentSessionID {
			return false, nil
		}
	}
	if err := r.missingProduct(o); err != nil {
		return false, err
	}
	c := *o
	r.m.orders = append(r.m.orders, &c)
	return true, nil
}

func (r *fakeOrderRepo) find(match func(*entity.Order) bool) []*entity.Order {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.m.orders {
		if match(o) {
			c := *o
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeOrderRepo) first(match func(*entity.Order) bool) *entity.Order {
	if found := r.find(match); len(found) > 0 {
		return found[0]
	}
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.first(func(o *entity.Order) bool { return o.ID == id }), nil
}

func (r *fakeOrderRepo) FindByPaymentSessionID(_ context.Context, sessionID string) (*entity.Order, error) {
	return r.first(func(o *entity.Order) bool {
		return o.PaymentSessionID != nil && *o.PaymentSessionID == sessionID
	}), nil
}

func (r *fakeOrderRepo) FindByCustomer(_ context.Context, userID uuid.UUID, email string) ([]*entity.Order, error) {
	return r.find(func(o *entity.Order) bool {
		return (o.UserID != nil && *o.UserID == userID) || strings.EqualFold(o.Email, email)
	}), nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	return page(r.find(func(*entity.Order) bool { return true }), limit, offset), nil
}

func (r *fakeOrderRepo) CountAll(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.orders)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.orders {
		if existing.ID == o.ID {
			existing.Status, existing.OrderStatus, existing.TrackingID = o.Status, o.OrderStatus, o.TrackingID
			return nil
		}
	}
	return errors.New("order not found")
}

// ==================== NEWSLETTER ====================

type fakeNewsletterRepo struct{ m *memStore }

func (r *fakeNewsletterRepo) Subscribe(_ context.Context, sub *entity.NewsletterSubscriber) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if existing, ok := r.m.subs[sub.Email]; ok {
		existing.IsActive = true
		return false, nil
	}
	c := *sub
	c.IsActive = true
	r.m.subs[sub.Email] = &c
	return true, nil
}

func (r *fakeNewsletterRepo) ActiveEmails(_ context.Context) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []string
	for email, s := range r.m.subs {
		if s.IsActive {
			out = append(out, email)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ==================== STATS ====================

type fakeStatsRepo struct{ m *memStore }

func (r *fakeStatsRepo) Aggregate(_ context.Context, since time.Time) (*repository.OrderAggregate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	agg := &repository.OrderAggregate{
		Revenue:       decimal.Zero,
		ByStatus:      make(map[entity.PaymentStatus]int64),
		ByOrderStatus: make(map[entity.OrderStatus]int64),
		ProductsCount: int64(len(r.m.products)),
	}
	for _, o := range r.m.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		if o.Status == entity.PaymentStatusPaid {
			agg.Revenue = agg.Revenue.Add(o.AmountTotal)
		}
		agg.ByStatus[o.Status]++
		agg.ByOrderStatus[o.OrderStatus]++
	}
	return agg, nil
}

func (r *fakeStatsRepo) OrdersSince(ctx context.Context, since time.Time, limit int) ([]*entity.Order, error) {
	orders := (&fakeOrderRepo{r.m}).find(func(o *entity.Order) bool { return !o.CreatedAt.Before(since) })
	return page(orders, limit, 0), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ==================== OUTSIDE SYSTEMS ====================

type fakeMailer struct {
	mu            sync.Mutex
	fail          bool
	otps          []mailer.OTPMessage
	announcements [][]string
}

func (f *fakeMailer) SendOTP(_ context.Context, msg mailer.OTPMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return mailer.ErrSendFailed
	}
	f.otps = append(f.otps, msg)
	return nil
}

func (f *fakeMailer) SendAnnouncement(_ context.Context, recipients []string, _ mailer.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return mailer.ErrSendFailed
	}
	f.announcements = append(f.announcements, recipients)
	return nil
}

func (f *fakeMailer) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.otps) == 0 {
		return ""
	}
	return f.otps[len(f.otps)-1].Code
}

type fakeGateway struct {
	mu        sync.Mutex
	fail      bool
	requests  []payment.SessionRequest
	event     *payment.Event
	lineItems []payment.LineItem
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, payment.ErrProvider
	}
	f.requests = append(f.requests, req)
	return &payment.Session{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (f *fakeGateway) ParseWebhook(_ []byte, signature string) (*payment.Event, error) {
	if signature != "valid" {
		return nil, payment.ErrInvalidSignature
	}
	return f.event, nil
}

func (f *fakeGateway) ListLineItems(_ context.Context, _ string) ([]payment.LineItem, error) {
	return f.lineItems, nil
}

type fakeImages struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeImages) Upload(_ context.Context, _ any, folder string) (string, error) {
	return "https://res.cloudinary.com/demo/image/upload/v1/" + folder + "/img.jpg", nil
}

func (f *fakeImages) DeleteByURL(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

// ==================== FIXTURE ====================

type fixture struct {
	store   *memStore
	repo    *repository.Repository
	config  *utils.Config
	mail    *fakeMailer
	gateway *fakeGateway
	images  *fakeImages
	now     time.Time
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		store:   newMemStore(),
		mail:    &fakeMailer{},
		gateway: &fakeGateway{},
		images:  &fakeImages{},
		now:     time.Now().UTC().Truncate(time.Second),
		config: &utils.Config{
			App:      utils.AppConfig{BaseURL: "http://shop.test"},
			JWT:      utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
			Security: utils.SecurityConfig{BcryptCost: 4},
			OTP:      utils.OTPConfig{ExpiryMinutes: 5, Length: 6},
			Payment:  utils.PaymentConfig{Currency: "inr", ShippingCountries: []string{"IN"}},
		},
	}
	f.repo = f.store.repository()
	f.svc = NewService(f.repo, f.config, Deps{
		Mailer:  f.mail,
		Payment: f.gateway,
		Images:  f.images,
		Tokens:  utils.NewTokenIssuer(f.config.JWT.Secret, time.Hour),
		Clock:   func() time.Time { return f.now },
	}, zap.NewNop())
	return f
}

func (f *fixture) addProduct(name string, price int64, stock int) *entity.Product {
	p := &entity.Product{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: f.now, UpdatedAt: f.now},
		Name:     name,
		Slug:     utils.Slugify(name),
		Price:    decimal.NewFromInt(price),
		Category: entity.CategoryMen,
		Brand:    entity.DefaultBrand,
		Stock:    stock,
		Images:   []string{"https://img.example/" + utils.Slugify(name) + ".jpg"},
	}
	f.now = f.now.Add(time.Second)
	f.store.products[p.ID] = p
	return p
}

func (f *fixture) stockOf(id uuid.UUID) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.products[id].Stock
}

func (f *fixture) orderCount() int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.orders)
}
