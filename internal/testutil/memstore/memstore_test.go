package memstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
	"github.com/jhoicas/quilts-api/internal/testutil/memstore"
)

func TestStore_RepositorioPrevioVeLosCommits(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	quilts := s.Quilts()
	usage := s.Usage()

	err := s.RunUsage(ctx, func(q repository.QuiltRepository, u repository.UsageRepository) error {
		if err := q.Create(ctx, &entity.Quilt{ID: "q1", ItemNumber: 1}); err != nil {
			return err
		}
		return u.CreateCurrent(ctx, &entity.CurrentUsage{ID: "c1", QuiltID: "q1"})
	})
	require.NoError(t, err)

	got, err := quilts.GetByItemNumber(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "q1", got.ID)

	current, err := usage.ListCurrent(ctx)
	require.NoError(t, err)
	assert.Len(t, current, 1)
}

func TestStore_TransaccionFallidaNoSeVe(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	quilts := s.Quilts()

	err := s.RunUsage(ctx, func(q repository.QuiltRepository, _ repository.UsageRepository) error {
		if err := q.Create(ctx, &entity.Quilt{ID: "q1", ItemNumber: 1}); err != nil {
			return err
		}
		return errors.New("fallo")
	})
	require.Error(t, err)

	got, err := quilts.GetByItemNumber(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, s.Commits)
}
