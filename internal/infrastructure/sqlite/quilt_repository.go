package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

var _ repository.QuiltRepository = (*QuiltRepo)(nil)

const quiltColumns = `id, item_number, group_id, name, season, length_cm, width_cm, weight_grams,
	fill_material, material_details, color, brand, purchase_date, location, packaging_info,
	current_status, notes, created_at, updated_at`

// QuiltRepo implementación del puerto QuiltRepository sobre SQLite (usable con db o tx).
type QuiltRepo struct {
	q Querier
}

// NewQuiltRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewQuiltRepository(q Querier) *QuiltRepo {
	return &QuiltRepo{q: q}
}

// Create persiste un edredón nuevo.
func (r *QuiltRepo) Create(ctx context.Context, quilt *entity.Quilt) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO quilts (`+quiltColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		quilt.ID, quilt.ItemNumber, nullInt(quilt.GroupID), quilt.Name, string(quilt.Season),
		quilt.LengthCm, quilt.WidthCm, quilt.WeightGrams, quilt.FillMaterial, quilt.MaterialDetails,
		quilt.Color, nullString(quilt.Brand), formatNullDate(quilt.PurchaseDate), quilt.Location,
		nullString(quilt.PackagingInfo), string(quilt.CurrentStatus), nullString(quilt.Notes),
		formatTimestamp(quilt.CreatedAt), formatTimestamp(quilt.UpdatedAt),
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
	row := r.q.QueryRowContext(ctx, `SELECT `+quiltColumns+` FROM quilts WHERE id = ?`, id)
	q, err := scanQuilt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quilt: %w", err)
	}
	return q, nil
}

// GetByItemNumber obtiene un edredón por su número de item.
func (r *QuiltRepo) GetByItemNumber(ctx context.Context, itemNumber int) (*entity.Quilt, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+quiltColumns+` FROM quilts WHERE item_number = ?`, itemNumber)
	q, err := scanQuilt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quilt by item number: %w", err)
	}
	return q, nil
}

// Update reemplaza los campos editables de un edredón.
func (r *QuiltRepo) Update(ctx context.Context, quilt *entity.Quilt) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE quilts SET item_number = ?, group_id = ?, name = ?, season = ?, length_cm = ?, width_cm = ?,
		 weight_grams = ?, fill_material = ?, material_details = ?, color = ?, brand = ?, purchase_date = ?,
		 location = ?, packaging_info = ?, current_status = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		quilt.ItemNumber, nullInt(quilt.GroupID), quilt.Name, string(quilt.Season), quilt.LengthCm,
		quilt.WidthCm, quilt.WeightGrams, quilt.FillMaterial, quilt.MaterialDetails, quilt.Color,
		nullString(quilt.Brand), formatNullDate(quilt.PurchaseDate), quilt.Location,
		nullString(quilt.PackagingInfo), string(quilt.CurrentStatus), nullString(quilt.Notes),
		formatTimestamp(quilt.UpdatedAt), quilt.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update quilt: %w", err)
	}
	return expectOne(res, "update quilt")
}

// UpdateStatus cambia solo el estado.
func (r *QuiltRepo) UpdateStatus(ctx context.Context, id string, status entity.Status, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE quilts SET current_status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTimestamp(at), id,
	)
	if err != nil {
		return fmt.Errorf("update quilt status: %w", err)
	}
	return expectOne(res, "update quilt status")
}

// Delete elimina el edredón; periodos y uso en curso caen en cascada.
func (r *QuiltRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM quilts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quilt: %w", err)
	}
	return expectOne(res, "delete quilt")
}

// List lista edredones según el filtro. Limit <= 0 no limita.
func (r *QuiltRepo) List(ctx context.Context, f repository.QuiltFilter) ([]*entity.Quilt, error) {
	var where []string
	var args []any
	if f.Season != "" {
		where = append(where, "season = ?")
		args = append(args, string(f.Season))
	}
	if f.Status != "" {
		where = append(where, "current_status = ?")
		args = append(args, string(f.Status))
	}
	if f.Location != "" {
		where = append(where, "instr(location, ?) > 0")
		args = append(args, f.Location)
	}
	if f.Search != "" {
		where = append(where, `(instr(name, ?) > 0 OR instr(coalesce(brand, ''), ?) > 0
			OR instr(color, ?) > 0 OR instr(coalesce(notes, ''), ?) > 0)`)
		args = append(args, f.Search, f.Search, f.Search, f.Search)
	}

	query := `SELECT ` + quiltColumns + ` FROM quilts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, item_number %s", f.OrderColumn(), dir, dir)
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	} else if f.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, f.Offset)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanQuilt(s scanner) (*entity.Quilt, error) {
	var (
		q                               entity.Quilt
		groupID                         sql.NullInt64
		brand, packaging, notes, bought sql.NullString
		season, status                  string
		createdAt, updatedAt            string
	)
	err := s.Scan(&q.ID, &q.ItemNumber, &groupID, &q.Name, &season, &q.LengthCm, &q.WidthCm,
		&q.WeightGrams, &q.FillMaterial, &q.MaterialDetails, &q.Color, &brand, &bought, &q.Location,
		&packaging, &status, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if groupID.Valid {
		g := int(groupID.Int64)
		q.GroupID = &g
	}
	q.Season = entity.Season(season)
	q.CurrentStatus = entity.Status(status)
	q.Brand = stringPtr(brand)
	q.PackagingInfo = stringPtr(packaging)
	q.Notes = stringPtr(notes)
	if q.PurchaseDate, err = parseNullDate(bought); err != nil {
		return nil, err
	}
	if q.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if q.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
