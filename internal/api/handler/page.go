package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/api/session"
)

// pageData assembles the common view bag: title, nav model, pending flash
// notice, and the login state taken from the request context.
func pageData(c echo.Context, nav *render.NavProvider, title string) render.Data {
	data := render.Data{
		Title:  title,
		Nav:    nav.Nav(c.Request().Context()),
		Notice: session.PopFlash(c),
	}
	if profile, ok := middleware.CurrentAccount(c); ok {
		data.LoggedIn = true
		data.Account = profile
	}
	return data
}
