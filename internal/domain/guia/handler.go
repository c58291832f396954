package guia

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tiss/tiss/internal/apperr"
	"github.com/tiss/tiss/internal/platform/auth"
	"github.com/tiss/tiss/internal/platform/web"
	"github.com/tiss/tiss/pkg/pagination"
)

type Handler struct {
	svc       *Service
	composite *Composite
}

func NewHandler(svc *Service, composite *Composite) *Handler {
	return &Handler{svc: svc, composite: composite}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := auth.RequireRole(auth.RoleAdmin, auth.RoleFaturamento, auth.RoleAtendimento)
	// Front desk opens guias during intake.
	write := auth.RequireRole(auth.RoleAdmin, auth.RoleFaturamento, auth.RoleAtendimento)
	del := auth.RequireRole(auth.RoleAdmin, auth.RoleFaturamento)

	api.GET("/guias", h.List, read)
	api.GET("/guias/:id", h.Get, read)
	api.POST("/guias", h.Create, write)
	api.POST("/guias/completa", h.CreateCompleta, write)
	api.PUT("/guias/:id", h.Update, write)
	api.DELETE("/guias/:id", h.Delete, del)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := web.BindStrict(c, &in); err != nil {
		return err
	}
	g, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, g)
}

// CreateCompleta receives the whole claim graph and persists it atomically.
func (h *Handler) CreateCompleta(c echo.Context) error {
	var in CompletaInput
	if err := web.BindStrict(c, &in); err != nil {
		return err
	}
	result, err := h.composite.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
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
	g, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
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
		return apperr.NotFound("guia", id)
	}
	return c.NoContent(http.StatusNoContent)
}
