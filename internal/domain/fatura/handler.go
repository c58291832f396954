package fatura

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tiss/tiss/internal/apperr"
	"github.com/tiss/tiss/internal/platform/auth"
	"github.com/tiss/tiss/internal/platform/web"
	"github.com/tiss/tiss/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := auth.RequireRole(auth.RoleAdmin, auth.RoleFaturamento, auth.RoleAtendimento)
	write := auth.RequireRole(auth.RoleAdmin, auth.RoleFaturamento)

	api.GET("/faturas", h.List, read)
	api.GET("/faturas/:id", h.Get, read)
	api.POST("/faturas", h.Create, write)
	api.PUT("/faturas/:id", h.Update, write)
	api.DELETE("/faturas/:id", h.Delete, write)

	api.GET("/faturas/:id/guias", h.ListGuias, read)
	api.POST("/faturas/:id/guias", h.AddGuia, write)
	api.DELETE("/faturas/:id/guias/:guiaID", h.RemoveGuia, write)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := web.BindStrict(c, &in); err != nil {
		return err
	}
	f, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) List(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.Search(c.Request().Context(), web.Filters(c), p)
	if err != nil {
		return err
	}
	resp := pagination.NewResponse(items, p, total)
	pagination.SetHeaders(c, resp.Pagination)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := web.BindStrict(c, &in); err != nil {
		return err
	}
	f, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("fatura", id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddGuia(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	var in AddGuiaInput
	if err := web.BindStrict(c, &in); err != nil {
		return err
	}
	link, err := h.svc.AddGuia(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) ListGuias(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	links, total, err := h.svc.ListGuias(c.Request().Context(), id, p)
	if err != nil {
		return err
	}
	resp := pagination.NewResponse(links, p, total)
	pagination.SetHeaders(c, resp.Pagination)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) RemoveGuia(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	guiaID, err := web.PathID(c, "guiaID")
	if err != nil {
		return err
	}
	ok, err := h.svc.RemoveGuia(c.Request().Context(), id, guiaID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("fatura_guia", guiaID)
	}
	return c.NoContent(http.StatusNoContent)
}
