package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/domain"
)

// memStore is an in-memory session store for handler tests.
type memStore struct {
	records map[string]*domain.SessionData
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*domain.SessionData)}
}

func (s *memStore) Get(_ context.Context, id string) (*domain.SessionData, error) {
	data, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	clone := *data
	return &clone, nil
}

func (s *memStore) Save(_ context.Context, id string, data *domain.SessionData) error {
	clone := *data
	s.records[id] = &clone
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.records, id)
	return nil
}

// stubAccounts implements ports.AccountService over plain-text passwords.
type stubAccounts struct {
	accounts  map[string]*domain.Account
	passwords map[string]string
	nextID    int
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{
		accounts:  make(map[string]*domain.Account),
		passwords: make(map[string]string),
	}
}

func (s *stubAccounts) add(firstName, email, password, role string) *domain.Account {
	s.nextID++
	a := &domain.Account{
		ID:        "acct_" + strconv.Itoa(s.nextID),
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Role:      role,
	}
	s.accounts[a.ID] = a
	s.passwords[a.ID] = password
	return a
}

func (s *stubAccounts) Register(_ context.Context, firstName, lastName, email, password string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			return nil, domain.ErrEmailExists
		}
	}
	a := s.add(firstName, email, password, domain.RoleClient)
	a.LastName = lastName
	clone := *a
	return &clone, nil
}

func (s *stubAccounts) Authenticate(_ context.Context, email, password string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email && s.passwords[a.ID] == password {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := s.accounts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (s *stubAccounts) UpdateProfile(_ context.Context, id, firstName, lastName, email string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email && a.ID != id {
			return nil, domain.ErrEmailExists
		}
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.FirstName, a.LastName, a.Email = firstName, lastName, email
	clone := *a
	return &clone, nil
}

func (s *stubAccounts) ChangePassword(_ context.Context, id, newPassword string) error {
	if _, ok := s.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	s.passwords[id] = newPassword
	return nil
}

// stubInventory implements ports.InventoryService in memory.
type stubInventory struct {
	classifications []domain.Classification
	vehicles        map[string]*domain.Vehicle
	nextID          int
}

func newStubInventory() *stubInventory {
	return &stubInventory{vehicles: make(map[string]*domain.Vehicle)}
}

func (s *stubInventory) addClassification(name string) domain.Classification {
	s.nextID++
	c := domain.Classification{ID: "cls_" + strconv.Itoa(s.nextID), Name: name}
	s.classifications = append(s.classifications, c)
	return c
}

func (s *stubInventory) addVehicle(v domain.Vehicle) *domain.Vehicle {
	s.nextID++
	v.ID = "veh_" + strconv.Itoa(s.nextID)
	s.vehicles[v.ID] = &v
	return &v
}

func (s *stubInventory) Classifications(_ context.Context) ([]domain.Classification, error) {
	return s.classifications, nil
}

func (s *stubInventory) AddClassification(_ context.Context, name string) (*domain.Classification, error) {
	for _, c := range s.classifications {
		if c.Name == name {
			return nil, domain.ErrClassificationExists
		}
	}
	c := s.addClassification(name)
	return &c, nil
}

func (s *stubInventory) VehicleByID(_ context.Context, id string) (*domain.Vehicle, error) {
	if v, ok := s.vehicles[id]; ok {
		clone := *v
		return &clone, nil
	}
	return nil, domain.ErrVehicleNotFound
}

func (s *stubInventory) VehiclesByClassification(_ context.Context, classificationID string) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range s.vehicles {
		if v.ClassificationID == classificationID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *stubInventory) AddVehicle(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	return s.addVehicle(*v), nil
}

func (s *stubInventory) UpdateVehicle(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if _, ok := s.vehicles[v.ID]; !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	s.vehicles[v.ID] = &clone
	out := clone
	return &out, nil
}

func (s *stubInventory) DeleteVehicle(_ context.Context, id string) error {
	if _, ok := s.vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(s.vehicles, id)
	return nil
}

func (s *stubInventory) Search(_ context.Context, filter domain.SearchFilter) ([]domain.Vehicle, error) {
	if filter.Empty() {
		return []domain.Vehicle{}, nil
	}
	var out []domain.Vehicle
	for _, v := range s.vehicles {
		if filter.Make != "" && !strings.EqualFold(v.Make, filter.Make) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *stubInventory) Summary(_ context.Context) (*domain.ReportSummary, error) {
	return &domain.ReportSummary{TotalVehicles: int64(len(s.vehicles))}, nil
}

// stubTokens recognises tokens of the form "token-<account id>". onIssue,
// when set, runs before each Issue so tests can observe ordering.
type stubTokens struct {
	claims  map[string]domain.AccountClaims
	onIssue func()
}

func newStubTokens() *stubTokens {
	return &stubTokens{claims: make(map[string]domain.AccountClaims)}
}

func (s *stubTokens) Issue(claims domain.AccountClaims) (string, error) {
	if s.onIssue != nil {
		s.onIssue()
	}
	token := "token-" + claims.AccountID
	s.claims[token] = claims
	return token, nil
}

func (s *stubTokens) Verify(token string) (*domain.AccountClaims, error) {
	if claims, ok := s.claims[token]; ok {
		return &claims, nil
	}
	return nil, domain.ErrInvalidCredentials
}

// testApp bundles a routed echo instance with the stubs behind it.
type testApp struct {
	e         *echo.Echo
	store     *memStore
	accounts  *stubAccounts
	inventory *stubInventory
	tokens    *stubTokens
}

// newTestApp wires the handlers under test into an echo instance mirroring
// the production route table.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	e := echo.New()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer

	store := newMemStore()
	accounts := newStubAccounts()
	inventory := newStubInventory()
	tokens := newStubTokens()

	log := zerolog.Nop()
	pages := NewPageBuilder(inventory, log)
	validate := NewFormValidator()

	e.Use(middleware.Sessions(store))
	e.Use(middleware.Identity(tokens))

	accountHandler := NewAccountHandler(accounts, tokens, 2*time.Hour, pages, validate, log)
	inventoryHandler := NewInventoryHandler(inventory, pages, validate, log)
	searchHandler := NewSearchHandler(inventory, pages)

	account := e.Group("/account")
	account.GET("/login", accountHandler.BuildLogin)
	account.POST("/login", accountHandler.Login)
	account.GET("/register", accountHandler.BuildRegister)
	account.POST("/register", accountHandler.Register)
	account.GET("/", accountHandler.Management, middleware.RequireLogin)
	account.POST("/update", accountHandler.Update, middleware.RequireLogin)
	account.POST("/password", accountHandler.ChangePassword, middleware.RequireLogin)
	account.GET("/logout", accountHandler.Logout, middleware.RequireLogin)

	inv := e.Group("/inv")
	inv.GET("/type/:classification_id", inventoryHandler.ByClassification)
	inv.GET("/getInventory/:classification_id", inventoryHandler.InventoryJSON)
	inv.POST("/add-classification", inventoryHandler.AddClassification, middleware.RequireStaff)
	inv.POST("/delete", inventoryHandler.Delete, middleware.RequireStaff)

	e.GET("/search", searchHandler.BuildSearch)
	e.POST("/search", searchHandler.Search)

	return &testApp{e: e, store: store, accounts: accounts, inventory: inventory, tokens: tokens}
}

// loginAs seeds a session record and returns the cookies a logged-in
// browser would send.
func (a *testApp) loginAs(account *domain.Account) []*http.Cookie {
	claims := account.Claims()
	a.store.records["sess-test"] = &domain.SessionData{LoggedIn: true, Account: &claims}
	return []*http.Cookie{{Name: middleware.SessionCookie, Value: "sess-test"}}
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
