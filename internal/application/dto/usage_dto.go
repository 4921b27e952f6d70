package dto

import "time"

// StartUsageRequest entrada para empezar a usar un edredón.
type StartUsageRequest struct {
	QuiltID         string     `json:"quilt_id"`
	StartedAt       *time.Time `json:"started_at"` // por defecto hoy
	ExpectedEndDate *time.Time `json:"expected_end_date"`
	UsageType       string     `json:"usage_type"` // por defecto "regular"
	Notes           *string    `json:"notes"`
}

// EndUsageRequest entrada para terminar un uso en curso.
type EndUsageRequest struct {
	UsageID string     `json:"usage_id"`
	EndDate *time.Time `json:"end_date"` // por defecto hoy
	Notes   *string    `json:"notes"`
}

// UsagePeriodResponse salida de un periodo de uso cerrado.
type UsagePeriodResponse struct {
	ID           string    `json:"id"`
	QuiltID      string    `json:"quilt_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	SeasonUsed   string    `json:"season_used"`
	DurationDays int       `json:"duration_days"`
	Notes        string    `json:"notes"`
}

// CurrentUsageResponse salida de un uso en curso.
type CurrentUsageResponse struct {
	ID              string     `json:"id"`
	QuiltID         string     `json:"quilt_id"`
	StartedAt       time.Time  `json:"started_at"`
	ExpectedEndDate *time.Time `json:"expected_end_date,omitempty"`
	UsageType       string     `json:"usage_type"`
	Notes           *string    `json:"notes,omitempty"`
}
