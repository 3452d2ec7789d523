package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type idSeq struct{ n int }

func (s *idSeq) next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s%03d", prefix, s.n)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

type stubUserRepo struct {
	seq       idSeq
	users     map[string]*domain.User
	createErr error
	attachErr error
	detachErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.ShopIDs = cloneStrings(u.ShopIDs)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	stored := cloneUser(user)
	stored.ID = r.seq.next("user")
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, c ports.UserChanges) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Name != nil {
		u.Name = *c.Name
	}
	if c.PasswordHash != nil {
		u.PasswordHash = *c.PasswordHash
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

func (r *stubUserRepo) AttachShop(_ context.Context, userID, shopID string) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !slices.Contains(u.ShopIDs, shopID) {
		u.ShopIDs = append(u.ShopIDs, shopID)
	}
	return nil
}

func (r *stubUserRepo) DetachShop(_ context.Context, shopID string) error {
	if r.detachErr != nil {
		return r.detachErr
	}
	for _, u := range r.users {
		kept := u.ShopIDs[:0]
		for _, id := range u.ShopIDs {
			if id != shopID {
				kept = append(kept, id)
			}
		}
		u.ShopIDs = kept
	}
	return nil
}

type stubFoodRepo struct {
	seq     idSeq
	foods   map[string]*domain.Food
	findErr error
}

func newStubFoodRepo() *stubFoodRepo {
	return &stubFoodRepo{foods: make(map[string]*domain.Food)}
}

func (r *stubFoodRepo) add(name string) *domain.Food {
	f, _ := r.Create(context.Background(), &domain.Food{Name: name})
	return f
}

func (r *stubFoodRepo) Create(_ context.Context, food *domain.Food) (*domain.Food, error) {
	clone := *food
	clone.ID = r.seq.next("food")
	r.foods[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubFoodRepo) FindByID(_ context.Context, id string) (*domain.Food, error) {
	f, ok := r.foods[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	clone := *f
	return &clone, nil
}

// FindByName mirrors the store: oldest id wins.
func (r *stubFoodRepo) FindByName(_ context.Context, name string) (*domain.Food, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var best *domain.Food
	for _, f := range r.foods {
		if f.Name == name && (best == nil || f.ID < best.ID) {
			best = f
		}
	}
	if best == nil {
		return nil, domain.ErrFoodNotFound
	}
	clone := *best
	return &clone, nil
}

func (r *stubFoodRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Food, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	seen := make(map[string]bool)
	var out []*domain.Food
	for _, id := range ids {
		if f, ok := r.foods[id]; ok && !seen[id] {
			seen[id] = true
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFoodRepo) List(_ context.Context) ([]*domain.Food, error) {
	out := make([]*domain.Food, 0, len(r.foods))
	for _, f := range r.foods {
		clone := *f
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubFoodRepo) Update(_ context.Context, id string, c ports.FoodChanges) (*domain.Food, error) {
	f, ok := r.foods[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	if c.Name != nil {
		f.Name = *c.Name
	}
	if c.Image != nil {
		f.Image = *c.Image
	}
	clone := *f
	return &clone, nil
}

func (r *stubFoodRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.foods[id]; !ok {
		return domain.ErrFoodNotFound
	}
	delete(r.foods, id)
	return nil
}

type stubShopRepo struct {
	seq           idSeq
	shops         map[string]*domain.Shop
	writes        int
	pushErr       error
	setCheckedErr error
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{shops: make(map[string]*domain.Shop)}
}

func cloneShop(s *domain.Shop) *domain.Shop {
	clone := *s
	clone.FoodsInShop = cloneStrings(s.FoodsInShop)
	clone.FoodChecked = cloneStrings(s.FoodChecked)
	return &clone
}

func (r *stubShopRepo) Create(_ context.Context, shop *domain.Shop) (*domain.Shop, error) {
	stored := cloneShop(shop)
	stored.ID = r.seq.next("shop")
	r.shops[stored.ID] = stored
	return cloneShop(stored), nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id string) (*domain.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	return cloneShop(s), nil
}

func (r *stubShopRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Shop, error) {
	var out []*domain.Shop
	for _, id := range ids {
		if s, ok := r.shops[id]; ok {
			out = append(out, cloneShop(s))
		}
	}
	return out, nil
}

func (r *stubShopRepo) List(_ context.Context) ([]*domain.Shop, error) {
	out := make([]*domain.Shop, 0, len(r.shops))
	for _, s := range r.shops {
		out = append(out, cloneShop(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubShopRepo) Update(_ context.Context, id string, c ports.ShopChanges, expected *int64) (*domain.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	if expected != nil && *expected != s.Version {
		return nil, domain.ErrVersionConflict
	}
	if c.Name != nil {
		s.Name = *c.Name
	}
	if c.FoodsInShop != nil {
		s.FoodsInShop = cloneStrings(*c.FoodsInShop)
	}
	if c.FoodChecked != nil {
		s.ReplaceChecked(*c.FoodChecked)
	}
	s.Version++
	r.writes++
	return cloneShop(s), nil
}

func (r *stubShopRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.shops[id]; !ok {
		return domain.ErrShopNotFound
	}
	delete(r.shops, id)
	return nil
}

func (r *stubShopRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.shops[id]; ok {
			delete(r.shops, id)
			n++
		}
	}
	return n, nil
}

func (r *stubShopRepo) PushFoods(_ context.Context, id string, foodIDs []string) (*domain.Shop, error) {
	if r.pushErr != nil {
		return nil, r.pushErr
	}
	s, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	s.FoodsInShop = append(s.FoodsInShop, foodIDs...)
	s.Version++
	r.writes++
	return cloneShop(s), nil
}

func (r *stubShopRepo) SetChecked(_ context.Context, id string, foodIDs []string) (*domain.Shop, error) {
	if r.setCheckedErr != nil {
		return nil, r.setCheckedErr
	}
	s, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	s.ReplaceChecked(foodIDs)
	s.Version++
	r.writes++
	return cloneShop(s), nil
}

func (r *stubShopRepo) PullFood(_ context.Context, id, foodID string) error {
	s, ok := r.shops[id]
	if !ok {
		return domain.ErrShopNotFound
	}
	kept := s.FoodsInShop[:0]
	for _, f := range s.FoodsInShop {
		if f != foodID {
			kept = append(kept, f)
		}
	}
	s.FoodsInShop = kept
	s.Version++
	r.writes++
	return nil
}

// ---------------------------------------------------------------------------
// Token, revocation and mail stubs
// ---------------------------------------------------------------------------

type stubTokens struct {
	issued []string
	err    error
}

func (t *stubTokens) Issue(user *domain.User) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	tok := "token-" + user.ID
	t.issued = append(t.issued, tok)
	return tok, nil
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, userID string, at time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[userID] = at
	return nil
}

func (r *stubRevoker) RevokedSince(_ context.Context, userID string) (time.Time, bool, error) {
	at, ok := r.revoked[userID]
	return at, ok, r.err
}

type stubMailer struct {
	sent []ports.MailMessage
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
