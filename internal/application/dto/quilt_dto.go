package dto

import "time"

// CreateQuiltRequest entrada para registrar un edredón manualmente.
type CreateQuiltRequest struct {
	ItemNumber      int        `json:"item_number"`
	GroupID         *int       `json:"group_id"`
	Name            string     `json:"name"`
	Season          string     `json:"season"`
	LengthCm        int        `json:"length_cm"`
	WidthCm         int        `json:"width_cm"`
	WeightGrams     int        `json:"weight_grams"`
	FillMaterial    string     `json:"fill_material"`
	MaterialDetails string     `json:"material_details"`
	Color           string     `json:"color"`
	Brand           *string    `json:"brand"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	Location        string     `json:"location"`
	PackagingInfo   *string    `json:"packaging_info"`
	CurrentStatus   string     `json:"current_status"`
	Notes           *string    `json:"notes"`
}

// UpdateQuiltRequest actualización parcial: solo se aplican los campos no nulos.
type UpdateQuiltRequest struct {
	GroupID         *int       `json:"group_id"`
	Name            *string    `json:"name"`
	Season          *string    `json:"season"`
	LengthCm        *int       `json:"length_cm"`
	WidthCm         *int       `json:"width_cm"`
	WeightGrams     *int       `json:"weight_grams"`
	FillMaterial    *string    `json:"fill_material"`
	MaterialDetails *string    `json:"material_details"`
	Color           *string    `json:"color"`
	Brand           *string    `json:"brand"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	Location        *string    `json:"location"`
	PackagingInfo   *string    `json:"packaging_info"`
	CurrentStatus   *string    `json:"current_status"`
	Notes           *string    `json:"notes"`
}

// QuiltFilter filtros, orden y paginación del listado.
type QuiltFilter struct {
	Season    string `json:"season"`
	Status    string `json:"status"`
	Location  string `json:"location"`
	Search    string `json:"search"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // asc | desc
	PageRequest
}

// QuiltResponse salida de un edredón.
type QuiltResponse struct {
	ID              string     `json:"id"`
	ItemNumber      int        `json:"item_number"`
	GroupID         *int       `json:"group_id,omitempty"`
	Name            string     `json:"name"`
	Season          string     `json:"season"`
	LengthCm        int        `json:"length_cm"`
	WidthCm         int        `json:"width_cm"`
	WeightGrams     int        `json:"weight_grams"`
	FillMaterial    string     `json:"fill_material"`
	MaterialDetails string     `json:"material_details"`
	Color           string     `json:"color"`
	Brand           *string    `json:"brand,omitempty"`
	PurchaseDate    *time.Time `json:"purchase_date,omitempty"`
	Location        string     `json:"location"`
	PackagingInfo   *string    `json:"packaging_info,omitempty"`
	CurrentStatus   string     `json:"current_status"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// QuiltListResponse lista paginada de edredones.
type QuiltListResponse struct {
	Items []QuiltResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// QuiltDetailResponse edredón con su historial completo.
type QuiltDetailResponse struct {
	QuiltResponse
	UsagePeriods   []UsagePeriodResponse `json:"usage_periods"`
	CurrentUsage   *CurrentUsageResponse `json:"current_usage,omitempty"`
	TotalUsageDays int                   `json:"total_usage_days"`
	LastUsedDate   *time.Time            `json:"last_used_date,omitempty"`
}
