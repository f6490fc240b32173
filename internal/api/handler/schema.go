package handler

import "github.com/ecoquest/sustainability-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// dateLayout is the wire format of calendar dates (task creation, mission bounds).
const dateLayout = "2006-01-02"

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token,omitempty"`
	TokenType string       `json:"token_type,omitempty"`
	User      *domain.User `json:"user,omitempty"`
}

type principalResponse struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Role        domain.Role        `json:"role"`
	Authorities []domain.Authority `json:"authorities"`
}

// --- Users ---

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Completed   bool   `json:"completed"`
	CreatedOn   string `json:"created_on"  validate:"omitempty,datetime=2006-01-02"`
	Points      int    `json:"points"      validate:"omitempty,min=1"`
	MissionID   string `json:"mission_id"  validate:"required"`
	CategoryID  string `json:"category_id" validate:"required"`
	UserID      string `json:"user_id"`
}

type updateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Completed   bool   `json:"completed"`
	CreatedOn   string `json:"created_on"  validate:"omitempty,datetime=2006-01-02"`
	Points      int    `json:"points"      validate:"omitempty,min=1"`
	CategoryID  string `json:"category_id"`
	UserID      string `json:"user_id"`
}

type paginationQuery struct {
	Page int
	Size int
}

// --- Catalog ---

type categoryRequest struct {
	Name        string `json:"name"         validate:"required,max=100"`
	Description string `json:"description"  validate:"max=500"`
	ImpactLevel string `json:"impact_level" validate:"required,oneof=LOW MEDIUM HIGH"`
}

type missionRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	StartDate   string `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"    validate:"required,datetime=2006-01-02"`
	Active      *bool  `json:"active"`
}

type rewardRequest struct {
	Name           string `json:"name"            validate:"required,max=100"`
	Description    string `json:"description"     validate:"max=500"`
	RequiredPoints int    `json:"required_points" validate:"required,min=1"`
	Active         *bool  `json:"active"`
}

// --- Cache ---

type cacheStatsResponse struct {
	Caches []string `json:"caches"`
	Total  int      `json:"total"`
}

type messageResponse struct {
	Message string `json:"message"`
}
