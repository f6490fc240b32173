package domain

import (
	"errors"
	"time"
)

// ImpactLevel grades how much a sustainability category matters.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "LOW"
	ImpactMedium ImpactLevel = "MEDIUM"
	ImpactHigh   ImpactLevel = "HIGH"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrMissionNotFound  = errors.New("mission not found")
	ErrRewardNotFound   = errors.New("reward not found")
)

// Category groups tasks by sustainability theme.
type Category struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImpactLevel ImpactLevel `json:"impact_level"`
}

// Mission is a time-boxed campaign tasks belong to.
type Mission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Active      bool      `json:"active"`
}

// Reward can be redeemed once a user holds RequiredPoints.
type Reward struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	RequiredPoints int    `json:"required_points"`
	Active         bool   `json:"active"`
}
