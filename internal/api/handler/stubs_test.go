package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/api/middleware"
	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
	"github.com/chouchef/chouchef-api/internal/pkg/token"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a context for a JSON request. params are name/value pairs.
func newJSONContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func withCaller(c echo.Context, userID string) {
	c.Set(middleware.ClaimsKey, &token.Claims{UserID: userID})
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d (body %s)", want, rec.Code, rec.Body.String())
	}
}

type stubAuthService struct {
	registerFn       func(ctx context.Context, email, name, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, name, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

type stubUserService struct {
	users   map[string]*ports.UserDetail
	updated ports.UpdateUserInput
	deleted string
}

func (s *stubUserService) Get(_ context.Context, id string) (*ports.UserDetail, error) {
	d, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return d, nil
}

func (s *stubUserService) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, d := range s.users {
		if d.User.Email == email {
			return d.User, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) List(context.Context) ([]*ports.UserDetail, error) {
	out := make([]*ports.UserDetail, 0, len(s.users))
	for _, d := range s.users {
		out = append(out, d)
	}
	return out, nil
}

func (s *stubUserService) Update(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	d, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	s.updated = in
	u := *d.User
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	return &u, nil
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	s.deleted = id
	delete(s.users, id)
	return nil
}

type stubFoodService struct {
	foods   map[string]*domain.Food
	created *domain.Food
	err     error
}

func (s *stubFoodService) Create(_ context.Context, name, image string) (*domain.Food, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &domain.Food{ID: "food001", Name: name, Image: image}
	return s.created, nil
}

func (s *stubFoodService) Get(_ context.Context, id string) (*domain.Food, error) {
	f, ok := s.foods[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	return f, nil
}

func (s *stubFoodService) List(context.Context) ([]*domain.Food, error) {
	out := make([]*domain.Food, 0, len(s.foods))
	for _, f := range s.foods {
		out = append(out, f)
	}
	return out, nil
}

func (s *stubFoodService) Update(_ context.Context, id string, changes ports.FoodChanges) (*domain.Food, error) {
	f, ok := s.foods[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	if changes.Name != nil {
		f.Name = *changes.Name
	}
	if changes.Image != nil {
		f.Image = *changes.Image
	}
	return f, nil
}

func (s *stubFoodService) Delete(_ context.Context, id string) error {
	if _, ok := s.foods[id]; !ok {
		return domain.ErrFoodNotFound
	}
	delete(s.foods, id)
	return nil
}

// stubShopService records the arguments of the last call and returns err
// when set.
type stubShopService struct {
	shop    *domain.Shop
	detail  *ports.ShopDetail
	err     error
	owner   string
	name    string
	names   []string
	checked []string
	update  ports.UpdateShopInput
	removed [2]string
}

func (s *stubShopService) Create(_ context.Context, ownerID, name string) (*domain.Shop, error) {
	s.owner, s.name = ownerID, name
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Shop{ID: "shop001", Name: name, FoodsInShop: []string{}, FoodChecked: []string{}}, nil
}

func (s *stubShopService) Get(_ context.Context, id string) (*ports.ShopDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubShopService) List(context.Context) ([]*ports.ShopDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*ports.ShopDetail{s.detail}, nil
}

func (s *stubShopService) Update(_ context.Context, id string, in ports.UpdateShopInput) (*domain.Shop, error) {
	s.update = in
	if s.err != nil {
		return nil, s.err
	}
	return s.shop, nil
}

func (s *stubShopService) Delete(_ context.Context, id string) error {
	return s.err
}

func (s *stubShopService) AddFoodsByName(_ context.Context, shopID string, names []string) (*domain.Shop, error) {
	s.names = names
	if s.err != nil {
		return nil, s.err
	}
	return s.shop, nil
}

func (s *stubShopService) SetChecked(_ context.Context, shopID string, foodIDs []string) (*domain.Shop, error) {
	s.checked = foodIDs
	if s.err != nil {
		return nil, s.err
	}
	return s.shop, nil
}

func (s *stubShopService) RemoveFood(_ context.Context, shopID, foodID string) error {
	s.removed = [2]string{shopID, foodID}
	return s.err
}

type stubContactService struct {
	sent *domain.ContactMessage
	err  error
}

func (s *stubContactService) Send(_ context.Context, msg domain.ContactMessage) error {
	s.sent = &msg
	return s.err
}

type stubDetector struct {
	gotMime string
	gotLen  int
	text    string
	err     error
}

func (s *stubDetector) DetectText(_ context.Context, image []byte, mimeType string) (string, error) {
	s.gotMime, s.gotLen = mimeType, len(image)
	return s.text, s.err
}
