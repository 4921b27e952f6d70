package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

var _ repository.UsageRepository = (*UsageRepo)(nil)

// UsageRepo periodos de uso y usos en curso sobre SQLite.
type UsageRepo struct {
	q Querier
}

// NewUsageRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

// CreatePeriod persiste un periodo cerrado.
func (r *UsageRepo) CreatePeriod(ctx context.Context, p *entity.UsagePeriod) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO usage_periods (id, quilt_id, start_date, end_date, season_used, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.QuiltID, formatDate(p.StartDate), formatDate(p.EndDate), string(p.SeasonUsed), p.Notes,
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert usage period: %w", err)
	}
	return nil
}

// ListPeriodsByQuilt periodos del edredón, el más reciente primero. limit <= 0 devuelve todos.
func (r *UsageRepo) ListPeriodsByQuilt(ctx context.Context, quiltID string, limit int) ([]*entity.UsagePeriod, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, quilt_id, start_date, end_date, season_used, notes, created_at
		 FROM usage_periods WHERE quilt_id = ? ORDER BY start_date DESC, created_at DESC LIMIT ?`,
		quiltID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list usage periods: %w", err)
	}
	defer rows.Close()

	list := []*entity.UsagePeriod{}
	for rows.Next() {
		var (
			p                     entity.UsagePeriod
			season                string
			start, end, createdAt string
		)
		if err := rows.Scan(&p.ID, &p.QuiltID, &start, &end, &season, &p.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan usage period: %w", err)
		}
		p.SeasonUsed = entity.Season(season)
		if p.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		if p.EndDate, err = parseDate(end); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CreateCurrent persiste un uso en curso. Un segundo uso del mismo edredón es ErrDuplicate.
func (r *UsageRepo) CreateCurrent(ctx context.Context, u *entity.CurrentUsage) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO current_usage (id, quilt_id, started_at, expected_end_date, usage_type, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.QuiltID, formatDate(u.StartedAt), formatNullDate(u.ExpectedEndDate), u.UsageType,
		nullString(u.Notes), formatTimestamp(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert current usage: %w", err)
	}
	return nil
}

const currentColumns = `id, quilt_id, started_at, expected_end_date, usage_type, notes, created_at`

// GetCurrentByID obtiene un uso en curso por ID.
func (r *UsageRepo) GetCurrentByID(ctx context.Context, id string) (*entity.CurrentUsage, error) {
	return r.getCurrent(ctx, `SELECT `+currentColumns+` FROM current_usage WHERE id = ?`, id)
}

// GetCurrentByQuilt obtiene el uso en curso del edredón, si existe.
func (r *UsageRepo) GetCurrentByQuilt(ctx context.Context, quiltID string) (*entity.CurrentUsage, error) {
	return r.getCurrent(ctx, `SELECT `+currentColumns+` FROM current_usage WHERE quilt_id = ?`, quiltID)
}

func (r *UsageRepo) getCurrent(ctx context.Context, query string, arg string) (*entity.CurrentUsage, error) {
	u, err := scanCurrent(r.q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current usage: %w", err)
	}
	return u, nil
}

// ListCurrent usos en curso, el más reciente primero.
func (r *UsageRepo) ListCurrent(ctx context.Context) ([]*entity.CurrentUsage, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+currentColumns+` FROM current_usage ORDER BY started_at DESC`)
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
	res, err := r.q.ExecContext(ctx, `DELETE FROM current_usage WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete current usage: %w", err)
	}
	return expectOne(res, "delete current usage")
}

func scanCurrent(s scanner) (*entity.CurrentUsage, error) {
	var (
		u                  entity.CurrentUsage
		started, createdAt string
		expected, notes    sql.NullString
	)
	err := s.Scan(&u.ID, &u.QuiltID, &started, &expected, &u.UsageType, &notes, &createdAt)
	if err != nil {
		return nil, err
	}
	if u.StartedAt, err = parseDate(started); err != nil {
		return nil, err
	}
	if u.ExpectedEndDate, err = parseNullDate(expected); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	u.Notes = stringPtr(notes)
	return &u, nil
}
