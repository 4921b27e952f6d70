package repository

import (
	"context"
	"time"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
)

// Columnas por las que se permite ordenar un listado (evita inyección en ORDER BY).
var quiltSortColumns = map[string]string{
	"item_number":   "item_number",
	"name":          "name",
	"season":        "season",
	"weight_grams":  "weight_grams",
	"purchase_date": "purchase_date",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

// QuiltFilter criterios de listado: filtros exactos, subcadenas, orden y paginación.
type QuiltFilter struct {
	Season   entity.Season // vacío = todas
	Status   entity.Status // vacío = todos
	Location string        // subcadena
	Search   string        // subcadena en name, brand, color o notes
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// OrderColumn devuelve la columna de orden validada; item_number si SortBy no es conocido.
func (f QuiltFilter) OrderColumn() string {
	if col, ok := quiltSortColumns[f.SortBy]; ok {
		return col
	}
	return "item_number"
}

// ValidSortField indica si el campo puede usarse para ordenar.
func ValidSortField(field string) bool {
	_, ok := quiltSortColumns[field]
	return ok
}

// QuiltRepository define el puerto de persistencia para Quilt (DIP).
// Las búsquedas sin resultado devuelven (nil, nil).
type QuiltRepository interface {
	Create(ctx context.Context, quilt *entity.Quilt) error
	GetByID(ctx context.Context, id string) (*entity.Quilt, error)
	GetByItemNumber(ctx context.Context, itemNumber int) (*entity.Quilt, error)
	Update(ctx context.Context, quilt *entity.Quilt) error
	UpdateStatus(ctx context.Context, id string, status entity.Status, at time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter QuiltFilter) ([]*entity.Quilt, error)
}
