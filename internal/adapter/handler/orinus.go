package handler

import (
	"net/http"

	"github.com/goddivor/Orinu-hub/internal/domain"
	"github.com/goddivor/Orinu-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OrinuHandler serves the catalog.
type OrinuHandler struct {
	catalog *usecase.Catalog
}

// NewOrinuHandler creates a new catalog handler.
func NewOrinuHandler(catalog *usecase.Catalog) *OrinuHandler {
	return &OrinuHandler{catalog: catalog}
}

type listResponse struct {
	Orinus []domain.Orinu `json:"orinus"`
	Count  int            `json:"count"`
}

type categoriesResponse struct {
	Categories []domain.CategoryInfo `json:"categories"`
	Days       []domain.WeekDay      `json:"days"`
}

// List handles GET /v1/orinus?day=&category=&sort=&limit=.
func (h *OrinuHandler) List(c echo.Context) error {
	var rawDay, rawCategory, rawSort string
	limit := 0
	if err := echo.QueryParamsBinder(c).
		String("day", &rawDay).
		String("category", &rawCategory).
		String("sort", &rawSort).
		Int("limit", &limit).
		BindError(); err != nil {
		return mapDomainError(domain.NewAuthError(domain.KindInvalidInput, err))
	}

	filter, err := parseFilter(rawDay, rawCategory, rawSort)
	if err != nil {
		return mapDomainError(err)
	}
	filter.Limit = limit

	orinus, err := h.catalog.ListOrinus(c.Request().Context(), filter)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, listResponse{Orinus: orinus, Count: len(orinus)})
}

// Get handles GET /v1/orinus/:id.
func (h *OrinuHandler) Get(c echo.Context) error {
	orinu, err := h.catalog.GetOrinu(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, orinu)
}

// Landing handles GET /v1/landing?day=&category=.
func (h *OrinuHandler) Landing(c echo.Context) error {
	filter, err := parseFilter(c.QueryParam("day"), c.QueryParam("category"), "")
	if err != nil {
		return mapDomainError(err)
	}

	landing, err := h.catalog.Landing(c.Request().Context(), filter.Day, filter.Category)
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, landing)
}

// Categories handles GET /v1/categories.
func (h *OrinuHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, categoriesResponse{
		Categories: domain.Categories,
		Days:       domain.WeekDays,
	})
}

func parseFilter(day, category, sortKey string) (domain.OrinuFilter, error) {
	var filter domain.OrinuFilter
	var err error
	if filter.Day, err = domain.ParsePublishDay(day); err != nil {
		return filter, err
	}
	if filter.Category, err = domain.ParseCategory(category); err != nil {
		return filter, err
	}
	if filter.SortBy, err = domain.ParseSortKey(sortKey); err != nil {
		return filter, err
	}
	return filter, nil
}
