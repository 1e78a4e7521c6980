package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/render"
)

type HomeHandler struct {
	nav *render.NavProvider
}

func NewHomeHandler(nav *render.NavProvider) *HomeHandler {
	return &HomeHandler{nav: nav}
}

func (h *HomeHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", pageData(c, h.nav, "Home"))
}
