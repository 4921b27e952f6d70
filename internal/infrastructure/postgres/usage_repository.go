package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

var _ repository.UsageRepository = (*UsageRepo)(nil)

// UsageRepo periodos de uso y usos en curso sobre PostgreSQL.
type UsageRepo struct {
	q Querier
}

// NewUsageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

// CreatePeriod persiste un periodo cerrado.
func (r *UsageRepo) CreatePeriod(ctx context.Context, p *entity.UsagePeriod) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO usage_periods (id, quilt_id, start_date, end_date, season_used, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.QuiltID, p.StartDate, p.EndDate, string(p.SeasonUsed), p.Notes, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert usage period: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert usage period: %w", err)
	}
	return nil
}

// ListPeriodsByQuilt periodos del edredón, el más reciente primero. limit <= 0 devuelve todos.
func (r *UsageRepo) ListPeriodsByQuilt(ctx context.Context, quiltID string, limit int) ([]*entity.UsagePeriod, error) {
	query := `
		SELECT id, quilt_id, start_date, end_date, season_used, notes, created_at
		FROM usage_periods WHERE quilt_id = $1 ORDER BY start_date DESC, created_at DESC`
	args := []any{quiltID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usage periods: %w", err)
	}
	defer rows.Close()

	list := []*entity.UsagePeriod{}
	for rows.Next() {
		var p entity.UsagePeriod
		var season string
		if err := rows.Scan(&p.ID, &p.QuiltID, &p.StartDate, &p.EndDate, &season, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage period: %w", err)
		}
		p.SeasonUsed = entity.Season(season)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CreateCurrent persiste un uso en curso. Un segundo uso del mismo edredón es ErrDuplicate.
func (r *UsageRepo) CreateCurrent(ctx context.Context, u *entity.CurrentUsage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO current_usage (id, quilt_id, started_at, expected_end_date, usage_type, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.QuiltID, u.StartedAt, u.ExpectedEndDate, u.UsageType, u.Notes, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert current usage: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert current usage: %w", err)
	}
	return nil
}

const currentColumns = `id, quilt_id, started_at, expected_end_date, usage_type, notes, created_at`

// GetCurrentByID obtiene un uso en curso por ID.
func (r *UsageRepo) GetCurrentByID(ctx context.Context, id string) (*entity.CurrentUsage, error) {
	return r.getCurrent(ctx, `SELECT `+currentColumns+` FROM current_usage WHERE id = $1`, id)
}

// GetCurrentByQuilt obtiene el uso en curso del edredón, si existe.
func (r *UsageRepo) GetCurrentByQuilt(ctx context.Context, quiltID string) (*entity.CurrentUsage, error) {
	return r.getCurrent(ctx, `SELECT `+currentColumns+` FROM current_usage WHERE quilt_id = $1`, quiltID)
}

func (r *UsageRepo) getCurrent(ctx context.Context, query, arg string) (*entity.CurrentUsage, error) {
	u, err := scanCurrent(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current usage: %w", err)
	}
	return u, nil
}

// ListCurrent usos en curso, el más reciente primero.
func (r *UsageRepo) ListCurrent(ctx context.Context) ([]*entity.CurrentUsage, error) {
	rows, err := r.q.Query(ctx, `SELECT `+currentColumns+` FROM current_usage ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list current usage: %w", err)
	}
	defer rows.Close()

	list := []*entity.CurrentUsage{}
	for rows.Next() {
		u, err := scanCurrent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan current usage: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// DeleteCurrent elimina un uso en curso.
func (r *UsageRepo) DeleteCurrent(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM current_usage WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete current usage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCurrent(row pgx.Row) (*entity.CurrentUsage, error) {
	var u entity.CurrentUsage
	err := row.Scan(&u.ID, &u.QuiltID, &u.StartedAt, &u.ExpectedEndDate, &u.UsageType, &u.Notes, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
