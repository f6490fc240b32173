package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// catalogEndpoints implements the shared read/delete endpoints of the
// category, mission and reward resources.
type catalogEndpoints[T any] struct {
	service ports.CatalogService[T]
}

func (e catalogEndpoints[T]) list(c echo.Context) error {
	items, err := e.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (e catalogEndpoints[T]) get(c echo.Context) error {
	item, err := e.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (e catalogEndpoints[T]) delete(c echo.Context) error {
	if err := e.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// write binds R, converts it and either creates (id == "") or updates.
func writeCatalog[T, R any](c echo.Context, svc ports.CatalogService[T], convert func(*R) (T, error)) error {
	var req R
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := convert(&req)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if id := c.Param("id"); id != "" {
		updated, err := svc.Update(ctx, id, item)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, updated)
	}

	created, err := svc.Create(ctx, item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ── Categories ────────────────────────────────────────────────────────────────

type CategoryHandler struct {
	catalogEndpoints[domain.Category]
}

func NewCategoryHandler(service ports.CatalogService[domain.Category]) *CategoryHandler {
	return &CategoryHandler{catalogEndpoints[domain.Category]{service: service}}
}

// List handles GET /categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /categories/:id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error { return h.get(c) }

// Save handles POST /categories and PUT /categories/:id.
//
// @Summary      Create or update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  domain.Category
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /categories [post]
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Save(c echo.Context) error {
	return writeCatalog(c, h.service, func(r *categoryRequest) (domain.Category, error) {
		return domain.Category{
			Name:        r.Name,
			Description: r.Description,
			ImpactLevel: domain.ImpactLevel(r.ImpactLevel),
		}, nil
	})
}

// Delete handles DELETE /categories/:id.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id   path  string  true  "Category id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error { return h.delete(c) }

// ── Missions ──────────────────────────────────────────────────────────────────

type MissionHandler struct {
	catalogEndpoints[domain.Mission]
}

func NewMissionHandler(service ports.CatalogService[domain.Mission]) *MissionHandler {
	return &MissionHandler{catalogEndpoints[domain.Mission]{service: service}}
}

// List handles GET /missions.
//
// @Summary      List missions
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Mission
// @Router       /missions [get]
func (h *MissionHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /missions/:id.
//
// @Summary      Get a mission
// @Tags         missions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Mission id"
// @Success      200  {object}  domain.Mission
// @Failure      404  {object}  errorResponse
// @Router       /missions/{id} [get]
func (h *MissionHandler) Get(c echo.Context) error { return h.get(c) }

// Save handles POST /missions and PUT /missions/:id. Missions are active
// unless stated otherwise.
//
// @Summary      Create or update a mission
// @Tags         missions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      missionRequest  true  "Mission"
// @Success      200   {object}  domain.Mission
// @Success      201   {object}  domain.Mission
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /missions [post]
// @Router       /missions/{id} [put]
func (h *MissionHandler) Save(c echo.Context) error {
	return writeCatalog(c, h.service, func(r *missionRequest) (domain.Mission, error) {
		start, _ := time.Parse(dateLayout, r.StartDate)
		end, _ := time.Parse(dateLayout, r.EndDate)
		if end.Before(start) {
			return domain.Mission{}, echo.NewHTTPError(http.StatusBadRequest, "end_date must not be before start_date")
		}
		return domain.Mission{
			Name:        r.Name,
			Description: r.Description,
			StartDate:   start,
			EndDate:     end,
			Active:      boolOr(r.Active, true),
		}, nil
	})
}

// Delete handles DELETE /missions/:id.
//
// @Summary      Delete a mission
// @Tags         missions
// @Security     BearerAuth
// @Param        id   path  string  true  "Mission id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /missions/{id} [delete]
func (h *MissionHandler) Delete(c echo.Context) error { return h.delete(c) }

// ── Rewards ───────────────────────────────────────────────────────────────────

type RewardHandler struct {
	catalogEndpoints[domain.Reward]
}

func NewRewardHandler(service ports.CatalogService[domain.Reward]) *RewardHandler {
	return &RewardHandler{catalogEndpoints[domain.Reward]{service: service}}
}

// List handles GET /rewards.
//
// @Summary      List rewards
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Reward
// @Router       /rewards [get]
func (h *RewardHandler) List(c echo.Context) error { return h.list(c) }

// Get handles GET /rewards/:id.
//
// @Summary      Get a reward
// @Tags         rewards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reward id"
// @Success      200  {object}  domain.Reward
// @Failure      404  {object}  errorResponse
// @Router       /rewards/{id} [get]
func (h *RewardHandler) Get(c echo.Context) error { return h.get(c) }

// Save handles POST /rewards and PUT /rewards/:id.
//
// @Summary      Create or update a reward
// @Tags         rewards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rewardRequest  true  "Reward"
// @Success      200   {object}  domain.Reward
// @Success      201   {object}  domain.Reward
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /rewards [post]
// @Router       /rewards/{id} [put]
func (h *RewardHandler) Save(c echo.Context) error {
	return writeCatalog(c, h.service, func(r *rewardRequest) (domain.Reward, error) {
		return domain.Reward{
			Name:           r.Name,
			Description:    r.Description,
			RequiredPoints: r.RequiredPoints,
			Active:         boolOr(r.Active, true),
		}, nil
	})
}

// Delete handles DELETE /rewards/:id.
//
// @Summary      Delete a reward
// @Tags         rewards
// @Security     BearerAuth
// @Param        id   path  string  true  "Reward id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /rewards/{id} [delete]
func (h *RewardHandler) Delete(c echo.Context) error { return h.delete(c) }

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
