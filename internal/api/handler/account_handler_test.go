package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/api/session"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/core/service"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Profile, error)
	updateFn   func(ctx context.Context, in ports.UpdateInput) (string, *domain.Profile, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Update(ctx context.Context, in ports.UpdateInput) (string, *domain.Profile, error) {
	return s.updateFn(ctx, in)
}

type stubInventoryService struct{}

func (s *stubInventoryService) Classifications(context.Context) ([]domain.Classification, error) {
	return []domain.Classification{{ID: "c1", Name: "SUV"}}, nil
}

func (s *stubInventoryService) ByClassification(context.Context, string) (*ports.ClassificationPage, error) {
	return nil, domain.ErrClassificationNotFound
}

func (s *stubInventoryService) VehicleByID(context.Context, string) (*domain.Vehicle, error) {
	return nil, domain.ErrVehicleNotFound
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	return e
}

func newAccountHandler(svc ports.AccountService) *AccountHandler {
	nav := render.NewNavProvider(&stubInventoryService{}, zerolog.Nop())
	cookies := session.NewCookieManager(false, time.Hour)
	return NewAccountHandler(svc, cookies, nav, zerolog.Nop())
}

func postForm(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	return nil
}

func TestLogin_UnknownEmailAndWrongPasswordShareOneNotice(t *testing.T) {
	e := newEcho(t)

	notFound := newAccountHandler(&stubAccountService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Profile, error) {
			return "", nil, domain.ErrAccountNotFound
		},
	})
	c, recNotFound := postForm(e, "/account/login", url.Values{
		"account_email":    {"ghost@example.com"},
		"account_password": {"whatever"},
	})
	if err := notFound.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if recNotFound.Code != http.StatusBadRequest {
		t.Fatalf("unknown email: expected 400, got %d", recNotFound.Code)
	}

	wrongPass := newAccountHandler(&stubAccountService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Profile, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})
	c, recWrongPass := postForm(e, "/account/login", url.Values{
		"account_email":    {"alice@example.com"},
		"account_password": {"wrong"},
	})
	if err := wrongPass.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if recWrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", recWrongPass.Code)
	}

	// Both bodies must carry the identical generic notice so a response never
	// reveals whether the email exists.
	if !strings.Contains(recNotFound.Body.String(), credentialsNotice) {
		t.Fatalf("unknown-email body lacks generic notice")
	}
	if !strings.Contains(recWrongPass.Body.String(), credentialsNotice) {
		t.Fatalf("wrong-password body lacks generic notice")
	}
}

func TestLogin_SuccessAttachesCookieAndRedirects(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.Profile, error) {
			if email != "alice@example.com" || password != "s3cret99" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Profile{ID: "acct_1", FirstName: "Alice"}, nil
		},
	})

	c, rec := postForm(e, "/account/login", url.Values{
		"account_email":    {"alice@example.com"},
		"account_password": {"s3cret99"},
	})
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/" {
		t.Fatalf("expected redirect to /account/, got %q", loc)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "token123" {
		t.Fatalf("session cookie not attached: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestLogin_LockedOut(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Profile, error) {
			return "", nil, domain.ErrTooManyAttempts
		},
	})

	c, rec := postForm(e, "/account/login", url.Values{
		"account_email":    {"alice@example.com"},
		"account_password": {"s3cret99"},
	})
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRegister_SuccessRendersLogin(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.Account, error) {
			if in.Password != "longenough" {
				t.Fatalf("unexpected password: %q", in.Password)
			}
			return &domain.Account{ID: "acct_1", FirstName: in.FirstName, Email: in.Email}, nil
		},
	})

	c, rec := postForm(e, "/account/register", url.Values{
		"account_firstname": {"Alice"},
		"account_lastname":  {"Anderson"},
		"account_email":     {"alice@example.com"},
		"account_password":  {"longenough"},
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "registered Alice. Please log in.") {
		t.Fatalf("confirmation notice missing: %s", rec.Body.String())
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("registration must not issue a session cookie")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrAccountExists
		},
	})

	c, rec := postForm(e, "/account/register", url.Values{
		"account_firstname": {"Bob"},
		"account_lastname":  {"Brown"},
		"account_email":     {"bob@example.com"},
		"account_password":  {"longenough"},
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrStoreFailure
		},
	})

	c, rec := postForm(e, "/account/register", url.Values{
		"account_firstname": {"Bob"},
		"account_lastname":  {"Brown"},
		"account_email":     {"bob@example.com"},
		"account_password":  {"longenough"},
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sorry, the registration failed.") {
		t.Fatalf("failure notice missing")
	}
}

func TestRegister_HashingFailure(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.Account, error) {
			return nil, context.DeadlineExceeded
		},
	})

	c, rec := postForm(e, "/account/register", url.Values{
		"account_firstname": {"Bob"},
		"account_lastname":  {"Brown"},
		"account_email":     {"bob@example.com"},
		"account_password":  {"longenough"},
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error processing the registration") {
		t.Fatalf("processing notice missing")
	}
	// The form re-renders with the submitted names but never the password.
	if !strings.Contains(rec.Body.String(), "bob@example.com") {
		t.Fatalf("form echo missing")
	}
	if strings.Contains(rec.Body.String(), "longenough") {
		t.Fatalf("password leaked into rendered form")
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("service should not be called on invalid input")
			return nil, nil
		},
	})

	c, rec := postForm(e, "/account/register", url.Values{
		"account_firstname": {"Bob"},
		"account_email":     {"not-an-email"},
		"account_password":  {"short"},
	})
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdate_StoreFailureLeavesCookieUntouched(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		updateFn: func(_ context.Context, _ ports.UpdateInput) (string, *domain.Profile, error) {
			return "", nil, domain.ErrStoreFailure
		},
	})

	c, rec := postForm(e, "/account/update", url.Values{
		"account_id":        {"acct_1"},
		"account_firstname": {"Alice"},
		"account_lastname":  {"Anderson"},
		"account_email":     {"alice@example.com"},
	})
	c.Set("account", &domain.Profile{ID: "acct_1", FirstName: "Alice"})

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie may be issued on a failed update")
	}
}

func TestUpdate_SuccessReissuesSession(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		updateFn: func(_ context.Context, in ports.UpdateInput) (string, *domain.Profile, error) {
			return "fresh-token", &domain.Profile{
				ID: in.AccountID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email,
			}, nil
		},
	})

	c, rec := postForm(e, "/account/update", url.Values{
		"account_id":        {"acct_1"},
		"account_firstname": {"Alicia"},
		"account_lastname":  {"Anderson"},
		"account_email":     {"alicia@example.com"},
	})
	c.Set("account", &domain.Profile{ID: "acct_1", FirstName: "Alice"})

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "fresh-token" {
		t.Fatalf("re-issued cookie missing: %+v", cookie)
	}
	if !strings.Contains(rec.Body.String(), "you updated the account") {
		t.Fatalf("update confirmation missing")
	}
}

func TestUpdate_RejectsForeignAccountID(t *testing.T) {
	e := newEcho(t)
	h := newAccountHandler(&stubAccountService{
		updateFn: func(_ context.Context, _ ports.UpdateInput) (string, *domain.Profile, error) {
			t.Fatalf("service should not be called")
			return "", nil, nil
		},
	})

	c, _ := postForm(e, "/account/update", url.Values{
		"account_id":        {"acct_999"},
		"account_firstname": {"Mallory"},
		"account_lastname":  {"Mallet"},
		"account_email":     {"mallory@example.com"},
	})
	c.Set("account", &domain.Profile{ID: "acct_1"})

	err := h.Update(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestLogout_ClearsCookieButTokenSurvives(t *testing.T) {
	e := newEcho(t)

	issuer, err := service.NewTokenIssuer("secret")
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	token, err := issuer.Issue(domain.Profile{ID: "acct_1", Email: "alice@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	h := newAccountHandler(&stubAccountService{})
	req := httptest.NewRequest(http.MethodGet, "/account/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("session cookie not cleared: %+v", cookie)
	}

	// The issuer holds no revocation list: a token captured before logout
	// stays valid until its natural expiry.
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("token should still verify after logout: %v", err)
	}
}
