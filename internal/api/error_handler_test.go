package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/core/domain"
)

func errorContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer

	req := httptest.NewRequest(http.MethodGet, "/whatever", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	c, rec := errorContext(t)
	handle := NewHTTPErrorHandler(zerolog.Nop())

	handle(echo.NewHTTPError(http.StatusNotFound, "page not found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "404 Not Found") {
		t.Fatalf("error page title missing: %s", rec.Body.String())
	}
}

func TestErrorHandler_DomainNotFound(t *testing.T) {
	c, rec := errorContext(t)
	handle := NewHTTPErrorHandler(zerolog.Nop())

	handle(domain.ErrVehicleNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorStaysGeneric(t *testing.T) {
	c, rec := errorContext(t)
	handle := NewHTTPErrorHandler(zerolog.Nop())

	handle(errors.New("pq: connection reset by peer"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "connection reset") {
		t.Fatalf("internal error detail leaked to client")
	}
	if !strings.Contains(body, "Something went wrong on our server.") {
		t.Fatalf("generic message missing: %s", body)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	c, rec := errorContext(t)
	handle := NewHTTPErrorHandler(zerolog.Nop())

	if err := c.String(http.StatusOK, "already sent"); err != nil {
		t.Fatalf("write: %v", err)
	}
	handle(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response rewritten: %d", rec.Code)
	}
	if rec.Body.String() != "already sent" {
		t.Fatalf("committed body rewritten: %q", rec.Body.String())
	}
}
