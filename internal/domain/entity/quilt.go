package entity

import "time"

// Season clasificación de temporada de un edredón.
type Season string

// Temporadas.
const (
	SeasonWinter       Season = "winter"
	SeasonSpringAutumn Season = "spring_autumn"
	SeasonSummer       Season = "summer"
)

// Valid indica si la temporada es una de las conocidas.
func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpringAutumn, SeasonSummer:
		return true
	}
	return false
}

// Status estado actual de un edredón.
type Status string

// Estados.
const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
	StatusStorage     Status = "storage"
)

// Valid indica si el estado es uno de los conocidos.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusStorage:
		return true
	}
	return false
}

// Quilt representa un edredón físico del inventario del hogar.
// ItemNumber es el identificador externo (único); ID es el interno (UUID).
type Quilt struct {
	ID              string
	ItemNumber      int
	GroupID         *int
	Name            string
	Season          Season
	LengthCm        int
	WidthCm         int
	WeightGrams     int
	FillMaterial    string // material principal
	MaterialDetails string // composición completa en texto libre
	Color           string
	Brand           *string
	PurchaseDate    *time.Time
	Location        string
	PackagingInfo   *string
	CurrentStatus   Status
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
