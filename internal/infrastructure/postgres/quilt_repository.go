package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

var _ repository.QuiltRepository = (*QuiltRepo)(nil)

const quiltColumns = `id, item_number, group_id, name, season, length_cm, width_cm, weight_grams,
	fill_material, material_details, color, brand, purchase_date, location, packaging_info,
	current_status, notes, created_at, updated_at`

// QuiltRepo implementación del puerto QuiltRepository sobre PostgreSQL (usable con pool o tx).
type QuiltRepo struct {
	q Querier
}

// NewQuiltRepository construye el adaptador de persistencia para edredones. Pasar pool o tx (Querier).
func NewQuiltRepository(q Querier) *QuiltRepo {
	return &QuiltRepo{q: q}
}

// Create persiste un nuevo edredón.
func (r *QuiltRepo) Create(ctx context.Context, quilt *entity.Quilt) error {
	query := `
		INSERT INTO quilts (` + quiltColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		quilt.ID, quilt.ItemNumber, quilt.GroupID, quilt.Name, string(quilt.Season), quilt.LengthCm,
		quilt.WidthCm, quilt.WeightGrams, quilt.FillMaterial, quilt.MaterialDetails, quilt.Color,
		quilt.Brand, quilt.PurchaseDate, quilt.Location, quilt.PackagingInfo, string(quilt.CurrentStatus),
		quilt.Notes, quilt.CreatedAt, quilt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quilt: %w", err)
	}
	return nil
}

// GetByID obtiene un edredón por ID.
func (r *QuiltRepo) GetByID(ctx context.Context, id string) (*entity.Quilt, error) {
	q, err := scanQuilt(r.q.QueryRow(ctx, `SELECT `+quiltColumns+` FROM quilts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quilt: %w", err)
	}
	return q, nil
}

// GetByItemNumber obtiene un edredón por número de item.
func (r *QuiltRepo) GetByItemNumber(ctx context.Context, itemNumber int) (*entity.Quilt, error) {
	q, err := scanQuilt(r.q.QueryRow(ctx, `SELECT `+quiltColumns+` FROM quilts WHERE item_number = $1`, itemNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quilt by item number: %w", err)
	}
	return q, nil
}

// Update reemplaza los campos editables de un edredón.
func (r *QuiltRepo) Update(ctx context.Context, quilt *entity.Quilt) error {
	query := `
		UPDATE quilts SET item_number = $2, group_id = $3, name = $4, season = $5, length_cm = $6,
			width_cm = $7, weight_grams = $8, fill_material = $9, material_details = $10, color = $11,
			brand = $12, purchase_date = $13, location = $14, packaging_info = $15, current_status = $16,
			notes = $17, updated_at = $18
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		quilt.ID, quilt.ItemNumber, quilt.GroupID, quilt.Name, string(quilt.Season), quilt.LengthCm,
		quilt.WidthCm, quilt.WeightGrams, quilt.FillMaterial, quilt.MaterialDetails, quilt.Color,
		quilt.Brand, quilt.PurchaseDate, quilt.Location, quilt.PackagingInfo, string(quilt.CurrentStatus),
		quilt.Notes, quilt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update quilt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado (usado por el ciclo de uso).
func (r *QuiltRepo) UpdateStatus(ctx context.Context, id string, status entity.Status, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE quilts SET current_status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), at,
	)
	if err != nil {
		return fmt.Errorf("update quilt status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un edredón; periodos y uso en curso caen en cascada.
func (r *QuiltRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM quilts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quilt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista edredones según el filtro. Limit <= 0 no limita.
func (r *QuiltRepo) List(ctx context.Context, f repository.QuiltFilter) ([]*entity.Quilt, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Season != "" {
		where = append(where, "season = "+arg(string(f.Season)))
	}
	if f.Status != "" {
		where = append(where, "current_status = "+arg(string(f.Status)))
	}
	if f.Location != "" {
		where = append(where, "strpos(location, "+arg(f.Location)+") > 0")
	}
	if f.Search != "" {
		p := arg(f.Search)
		where = append(where, fmt.Sprintf(`(strpos(name, %[1]s) > 0 OR strpos(coalesce(brand, ''), %[1]s) > 0
			OR strpos(color, %[1]s) > 0 OR strpos(coalesce(notes, ''), %[1]s) > 0)`, p))
	}

	query := `SELECT ` + quiltColumns + ` FROM quilts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s NULLS LAST, item_number %s", f.OrderColumn(), dir, dir)
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quilts: %w", err)
	}
	defer rows.Close()

	list := []*entity.Quilt{}
	for rows.Next() {
		q, err := scanQuilt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quilt: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func scanQuilt(row pgx.Row) (*entity.Quilt, error) {
	var q entity.Quilt
	var season, status string
	err := row.Scan(&q.ID, &q.ItemNumber, &q.GroupID, &q.Name, &season, &q.LengthCm, &q.WidthCm,
		&q.WeightGrams, &q.FillMaterial, &q.MaterialDetails, &q.Color, &q.Brand, &q.PurchaseDate,
		&q.Location, &q.PackagingInfo, &status, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.Season = entity.Season(season)
	q.CurrentStatus = entity.Status(status)
	return &q, nil
}
