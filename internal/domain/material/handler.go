package material

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

	api.GET("/materiais", h.List, read)
	api.GET("/materiais/:id", h.Get, read)
	api.POST("/materiais", h.Create, write)
	api.PUT("/materiais/:id", h.Update, write)
	api.DELETE("/materiais/:id", h.Delete, write)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := web.BindStrict(c, &in); err != nil {
		return err
	}
	m, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
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
	m, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
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
		return apperr.NotFound("material", id)
	}
	return c.NoContent(http.StatusNoContent)
}
