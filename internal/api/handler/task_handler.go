package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecoquest/sustainability-api/internal/api/metrics"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

const defaultPageSize = 10

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListPaginated handles GET /tasks/paginated?page=&size=.
//
// @Summary      List tasks page by page
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Zero-based page"  default(0)
// @Param        size  query     int  false  "Page size (1-100)"  default(10)
// @Success      200   {object}  domain.Page[domain.Task]
// @Failure      400   {object}  errorResponse
// @Router       /tasks/paginated [get]
func (h *TaskHandler) ListPaginated(c echo.Context) error {
	q := paginationQuery{Size: defaultPageSize}
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("size", &q.Size).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and size must be integers")
	}

	page, err := h.service.ListPage(c.Request().Context(), q.Page, q.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Create handles POST /tasks. Without user_id the task belongs to the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID := req.UserID
	if userID == "" {
		p, err := ctxPrincipal(c)
		if err != nil {
			return err
		}
		userID = p.ID
	}

	task, err := h.service.Create(c.Request().Context(), ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedOn:   parseDate(req.CreatedOn),
		Points:      req.Points,
		MissionID:   req.MissionID,
		CategoryID:  req.CategoryID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/tasks/"+task.ID)
	return c.JSON(http.StatusCreated, task)
}

// Update handles PUT /tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Task"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedOn:   parseDate(req.CreatedOn),
		Points:      req.Points,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id   path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseDate reads an already validated date; empty yields the zero time.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dateLayout, s)
	return t
}
