package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/api/session"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// The same notice covers unknown email and wrong password, so a response
// never reveals whether an email is registered.
const credentialsNotice = "Please check your credentials and try again."

type AccountHandler struct {
	accounts ports.AccountService
	cookies  *session.CookieManager
	nav      *render.NavProvider
	log      zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, cookies *session.CookieManager, nav *render.NavProvider, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, cookies: cookies, nav: nav, log: log}
}

type loginForm struct {
	Email    string `form:"account_email" validate:"required,email"`
	Password string `form:"account_password" validate:"required"`
}

type registerForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required"`
	Email     string `form:"account_email" validate:"required,email"`
	Password  string `form:"account_password" validate:"required,min=8"`
}

type updateForm struct {
	AccountID string `form:"account_id" validate:"required"`
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required"`
	Email     string `form:"account_email" validate:"required,email"`
}

// ShowLogin delivers the login view.
func (h *AccountHandler) ShowLogin(c echo.Context) error {
	data := pageData(c, h.nav, "Login")
	data.Form = map[string]string{"account_email": ""}
	return c.Render(http.StatusOK, "account/login", data)
}

// Login processes the login form: credential check, token issue, cookie
// attach, redirect to the management page.
func (h *AccountHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		data := pageData(c, h.nav, "Login")
		data.Notice = credentialsNotice
		return c.Render(http.StatusBadRequest, "account/login", data)
	}
	if err := c.Validate(form); err != nil {
		data := pageData(c, h.nav, "Login")
		data.Errors = []string{err.Error()}
		data.Form = map[string]string{"account_email": form.Email}
		return c.Render(http.StatusBadRequest, "account/login", data)
	}

	token, _, err := h.accounts.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		data := pageData(c, h.nav, "Login")
		data.Form = map[string]string{"account_email": form.Email}

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
			data.Notice = credentialsNotice
			return c.Render(http.StatusBadRequest, "account/login", data)
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_credentials").Inc()
			data.Notice = credentialsNotice
			return c.Render(http.StatusUnauthorized, "account/login", data)
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("locked").Inc()
			data.Notice = "Too many failed attempts. Please try again later."
			return c.Render(http.StatusTooManyRequests, "account/login", data)
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("login: %w", err)
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.WithLabelValues("login").Inc()
	h.cookies.Attach(c, token)
	return c.Redirect(http.StatusFound, "/account/")
}

// ShowRegister delivers the registration view.
func (h *AccountHandler) ShowRegister(c echo.Context) error {
	data := pageData(c, h.nav, "Register")
	data.Form = map[string]string{}
	return c.Render(http.StatusOK, "account/register", data)
}

// Register processes the registration form. On success the login view is
// rendered with a confirmation; the password is never echoed back.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		data := pageData(c, h.nav, "Register")
		data.Notice = "Sorry, the registration failed."
		return c.Render(http.StatusBadRequest, "account/register", data)
	}

	formEcho := map[string]string{
		"account_firstname": form.FirstName,
		"account_lastname":  form.LastName,
		"account_email":     form.Email,
	}

	if err := c.Validate(form); err != nil {
		data := pageData(c, h.nav, "Register")
		data.Errors = []string{err.Error()}
		data.Form = formEcho
		return c.Render(http.StatusBadRequest, "account/register", data)
	}

	_, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		data := pageData(c, h.nav, "Register")
		data.Form = formEcho

		switch {
		case errors.Is(err, domain.ErrAccountExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			data.Notice = "An account with that email already exists."
			return c.Render(http.StatusConflict, "account/register", data)
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			data.Notice = "Sorry, the registration failed."
			return c.Render(http.StatusBadRequest, "account/register", data)
		case errors.Is(err, domain.ErrStoreFailure):
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			h.log.Error().Err(err).Msg("registration store failure")
			data.Notice = "Sorry, the registration failed."
			return c.Render(http.StatusUnprocessableEntity, "account/register", data)
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			h.log.Error().Err(err).Msg("registration processing failure")
			data.Notice = "Sorry, there was an error processing the registration."
			return c.Render(http.StatusInternalServerError, "account/register", data)
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	data := pageData(c, h.nav, "Login")
	data.Notice = fmt.Sprintf("Congratulations, you're registered %s. Please log in.", form.FirstName)
	data.Form = map[string]string{"account_email": form.Email}
	return c.Render(http.StatusCreated, "account/login", data)
}

// ShowManagement delivers the account management view.
func (h *AccountHandler) ShowManagement(c echo.Context) error {
	data := pageData(c, h.nav, "Account Management")
	return c.Render(http.StatusOK, "account/management", data)
}

// ShowUpdate delivers the account update form prefilled from the session.
func (h *AccountHandler) ShowUpdate(c echo.Context) error {
	data := pageData(c, h.nav, "Edit Account")
	if data.Account != nil {
		data.Form = map[string]string{
			"account_id":        data.Account.ID,
			"account_firstname": data.Account.FirstName,
			"account_lastname":  data.Account.LastName,
			"account_email":     data.Account.Email,
		}
	}
	return c.Render(http.StatusOK, "account/update", data)
}

// Update processes the account update form and re-issues the session so the
// cookie reflects the new profile. On a store failure the existing cookie is
// left untouched.
func (h *AccountHandler) Update(c echo.Context) error {
	profile, ok := middleware.CurrentAccount(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var form updateForm
	if err := c.Bind(&form); err != nil {
		data := pageData(c, h.nav, "Edit Account")
		data.Notice = "Sorry, the account update failed."
		return c.Render(http.StatusBadRequest, "account/update", data)
	}

	// The form carries the account id, but the session decides whose record
	// is written.
	if form.AccountID != profile.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You may only update your own account.")
	}

	formEcho := map[string]string{
		"account_id":        form.AccountID,
		"account_firstname": form.FirstName,
		"account_lastname":  form.LastName,
		"account_email":     form.Email,
	}

	if err := c.Validate(form); err != nil {
		data := pageData(c, h.nav, "Edit Account")
		data.Errors = []string{err.Error()}
		data.Form = formEcho
		return c.Render(http.StatusBadRequest, "account/update", data)
	}

	token, updated, err := h.accounts.Update(c.Request().Context(), ports.UpdateInput{
		AccountID: form.AccountID,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		data := pageData(c, h.nav, "Edit Account")
		data.Form = formEcho

		switch {
		case errors.Is(err, domain.ErrAccountExists):
			data.Notice = "That email is already in use."
			return c.Render(http.StatusConflict, "account/update", data)
		case errors.Is(err, domain.ErrStoreFailure), errors.Is(err, domain.ErrAccountNotFound):
			h.log.Error().Err(err).Str("account_id", form.AccountID).Msg("account update failed")
			data.Notice = "Sorry, the account update failed."
			return c.Render(http.StatusUnprocessableEntity, "account/update", data)
		default:
			return fmt.Errorf("update account: %w", err)
		}
	}

	metrics.SessionsIssuedTotal.WithLabelValues("update").Inc()
	h.cookies.Attach(c, token)

	data := pageData(c, h.nav, "Account Management")
	data.LoggedIn = true
	data.Account = updated
	data.Notice = "Congratulations, you updated the account!"
	return c.Render(http.StatusOK, "account/management", data)
}

// Logout clears the session cookie and returns to the home page. The token
// itself is not revoked and stays valid until its natural expiry.
func (h *AccountHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	middleware.ClearAccount(c)
	return c.Redirect(http.StatusFound, "/")
}
