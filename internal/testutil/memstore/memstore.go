// Package memstore implementa los puertos de persistencia en memoria para pruebas de la
// capa de aplicación. No es seguro para uso concurrente.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

type state struct {
	quilts  map[string]entity.Quilt
	periods []entity.UsagePeriod
	current map[string]entity.CurrentUsage
}

func newState() *state {
	return &state{quilts: map[string]entity.Quilt{}, current: map[string]entity.CurrentUsage{}}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.quilts {
		c.quilts[k] = v
	}
	c.periods = append(c.periods, s.periods...)
	for k, v := range s.current {
		c.current[k] = v
	}
	return c
}

// Store almacén en memoria con commit explícito y fallos inyectables.
type Store struct {
	committed *state

	// CommitErr si no es nil, el commit de la próxima transacción falla con este error.
	CommitErr error
	// FailCreate errores a devolver al crear el edredón con ese número de item.
	FailCreate map[int]error
	// PeriodErr si no es nil, toda creación de periodo de uso falla con este error.
	PeriodErr error
	// Commits cuenta las transacciones confirmadas.
	Commits int
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{committed: newState(), FailCreate: map[int]error{}}
}

var (
	_ importer.ImportTxRunner = (*Store)(nil)
	_ usecase.UsageTxRunner   = (*Store)(nil)
)

// view estado sobre el que operan los repositorios. Con tx nil lee el estado confirmado
// vigente en cada llamada.
type view struct {
	s  *Store
	tx *state
}

func (v *view) st() *state {
	if v.tx != nil {
		return v.tx
	}
	return v.s.committed
}

// Quilts repositorio sobre el estado confirmado.
func (s *Store) Quilts() repository.QuiltRepository {
	return &quiltRepo{v: &view{s: s}}
}

// Usage repositorio sobre el estado confirmado.
func (s *Store) Usage() repository.UsageRepository {
	return &usageRepo{v: &view{s: s}}
}

func (s *Store) run(fn func(v *view) error) error {
	v := &view{s: s, tx: s.committed.clone()}
	if err := fn(v); err != nil {
		return err
	}
	if s.CommitErr != nil {
		return fmt.Errorf("commit transaction: %w", s.CommitErr)
	}
	s.committed = v.tx
	s.Commits++
	return nil
}

// RunImport implementa importer.ImportTxRunner.
func (s *Store) RunImport(ctx context.Context, fn func(importer.ImportSession) error) error {
	return s.run(func(v *view) error { return fn(&session{v: v}) })
}

// RunUsage ejecuta fn con repositorios atados a una misma transacción.
func (s *Store) RunUsage(ctx context.Context, fn func(quilts repository.QuiltRepository, usage repository.UsageRepository) error) error {
	return s.run(func(v *view) error { return fn(&quiltRepo{v: v}, &usageRepo{v: v}) })
}

type session struct {
	v *view
}

func (ss *session) Quilts() repository.QuiltRepository { return &quiltRepo{v: ss.v} }
func (ss *session) Usage() repository.UsageRepository  { return &usageRepo{v: ss.v} }

// Row simula un savepoint: si fn falla se restaura el estado previo a la fila.
func (ss *session) Row(ctx context.Context, fn func() error) error {
	snap := ss.v.tx.clone()
	if err := fn(); err != nil {
		ss.v.tx = snap
		return err
	}
	return nil
}

// Periods devuelve todos los periodos confirmados.
func (s *Store) Periods() []entity.UsagePeriod {
	return append([]entity.UsagePeriod(nil), s.committed.periods...)
}

// QuiltCount número de edredones confirmados.
func (s *Store) QuiltCount() int { return len(s.committed.quilts) }

// CurrentCount número de usos en curso confirmados.
func (s *Store) CurrentCount() int { return len(s.committed.current) }

// ─── quilts ──────────────────────────────────────────────────────────────────

type quiltRepo struct {
	v *view
}

var _ repository.QuiltRepository = (*quiltRepo)(nil)

func (r *quiltRepo) Create(ctx context.Context, q *entity.Quilt) error {
	if err := r.v.s.FailCreate[q.ItemNumber]; err != nil {
		return err
	}
	for _, existing := range r.v.st().quilts {
		if existing.ItemNumber == q.ItemNumber {
			return fmt.Errorf("insert quilt: %w", domain.ErrDuplicate)
		}
	}
	r.v.st().quilts[q.ID] = *q
	return nil
}

func (r *quiltRepo) GetByID(ctx context.Context, id string) (*entity.Quilt, error) {
	q, ok := r.v.st().quilts[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *quiltRepo) GetByItemNumber(ctx context.Context, itemNumber int) (*entity.Quilt, error) {
	for _, q := range r.v.st().quilts {
		if q.ItemNumber == itemNumber {
			q := q
			return &q, nil
		}
	}
	return nil, nil
}

func (r *quiltRepo) Update(ctx context.Context, q *entity.Quilt) error {
	if _, ok := r.v.st().quilts[q.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.v.st().quilts {
		if id != q.ID && existing.ItemNumber == q.ItemNumber {
			return fmt.Errorf("update quilt: %w", domain.ErrDuplicate)
		}
	}
	r.v.st().quilts[q.ID] = *q
	return nil
}

func (r *quiltRepo) UpdateStatus(ctx context.Context, id string, status entity.Status, at time.Time) error {
	q, ok := r.v.st().quilts[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.CurrentStatus = status
	q.UpdatedAt = at
	r.v.st().quilts[id] = q
	return nil
}

func (r *quiltRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.v.st().quilts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.v.st().quilts, id)
	periods := r.v.st().periods[:0:0]
	for _, p := range r.v.st().periods {
		if p.QuiltID != id {
			periods = append(periods, p)
		}
	}
	r.v.st().periods = periods
	for cid, c := range r.v.st().current {
		if c.QuiltID == id {
			delete(r.v.st().current, cid)
		}
	}
	return nil
}

func (r *quiltRepo) List(ctx context.Context, f repository.QuiltFilter) ([]*entity.Quilt, error) {
	out := make([]*entity.Quilt, 0, len(r.v.st().quilts))
	for _, q := range r.v.st().quilts {
		if f.Season != "" && q.Season != f.Season {
			continue
		}
		if f.Status != "" && q.CurrentStatus != f.Status {
			continue
		}
		if f.Location != "" && !strings.Contains(q.Location, f.Location) {
			continue
		}
		if f.Search != "" && !matchesSearch(q, f.Search) {
			continue
		}
		q := q
		out = append(out, &q)
	}
	col := f.OrderColumn()
	sort.Slice(out, func(i, j int) bool {
		if f.SortDesc {
			return lessBy(col, out[j], out[i])
		}
		return lessBy(col, out[i], out[j])
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*entity.Quilt{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matchesSearch(q entity.Quilt, term string) bool {
	fields := []string{q.Name, q.Color}
	if q.Brand != nil {
		fields = append(fields, *q.Brand)
	}
	if q.Notes != nil {
		fields = append(fields, *q.Notes)
	}
	for _, f := range fields {
		if strings.Contains(f, term) {
			return true
		}
	}
	return false
}

func lessBy(col string, a, b *entity.Quilt) bool {
	switch col {
	case "name":
		return a.Name < b.Name
	case "season":
		return a.Season < b.Season
	case "weight_grams":
		return a.WeightGrams < b.WeightGrams
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.ItemNumber < b.ItemNumber
	}
}

// ─── usage ───────────────────────────────────────────────────────────────────

type usageRepo struct {
	v *view
}

var _ repository.UsageRepository = (*usageRepo)(nil)

func (r *usageRepo) CreatePeriod(ctx context.Context, p *entity.UsagePeriod) error {
	if r.v.s.PeriodErr != nil {
		return r.v.s.PeriodErr
	}
	if _, ok := r.v.st().quilts[p.QuiltID]; !ok {
		return errors.New("insert usage period: quilt inexistente")
	}
	r.v.st().periods = append(r.v.st().periods, *p)
	return nil
}

func (r *usageRepo) ListPeriodsByQuilt(ctx context.Context, quiltID string, limit int) ([]*entity.UsagePeriod, error) {
	out := []*entity.UsagePeriod{}
	for _, p := range r.v.st().periods {
		if p.QuiltID == quiltID {
			p := p
			out = append(out, &p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *usageRepo) CreateCurrent(ctx context.Context, u *entity.CurrentUsage) error {
	if _, ok := r.v.st().quilts[u.QuiltID]; !ok {
		return errors.New("insert current usage: quilt inexistente")
	}
	for _, c := range r.v.st().current {
		if c.QuiltID == u.QuiltID {
			return fmt.Errorf("insert current usage: %w", domain.ErrDuplicate)
		}
	}
	r.v.st().current[u.ID] = *u
	return nil
}

func (r *usageRepo) GetCurrentByID(ctx context.Context, id string) (*entity.CurrentUsage, error) {
	c, ok := r.v.st().current[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *usageRepo) GetCurrentByQuilt(ctx context.Context, quiltID string) (*entity.CurrentUsage, error) {
	for _, c := range r.v.st().current {
		if c.QuiltID == quiltID {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *usageRepo) ListCurrent(ctx context.Context) ([]*entity.CurrentUsage, error) {
	out := make([]*entity.CurrentUsage, 0, len(r.v.st().current))
	for _, c := range r.v.st().current {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (r *usageRepo) DeleteCurrent(ctx context.Context, id string) error {
	if _, ok := r.v.st().current[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.v.st().current, id)
	return nil
}
