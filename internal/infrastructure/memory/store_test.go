package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

func TestRunInTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Groups().Create(ctx, entity.NewGroup("g1", "before", "")))

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(tx repository.Store) error {
		g, err := tx.Groups().FindByID(ctx, "g1")
		require.NoError(t, err)
		g.Name = "after"
		require.NoError(t, tx.Groups().Save(ctx, g))
		require.NoError(t, tx.Labels().SaveAll(ctx, []*entity.Label{entity.NewLabel("l1", "cat")}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	g, err := s.Groups().FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "before", g.Name)
	_, err = s.Labels().FindByID(ctx, "l1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRunInTx_Commits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	err := s.RunInTx(ctx, func(tx repository.Store) error {
		return tx.Labels().SaveAll(ctx, []*entity.Label{entity.NewLabel("l1", "cat")})
	})
	require.NoError(t, err)

	l, err := s.Labels().FindByName(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, "l1", l.ID)
}

func TestRunInTx_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.RunInTx(ctx, func(repository.Store) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSave_AdvancesUpdatedAtWithFrozenClock(t *testing.T) {
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return frozen }))
	ctx := context.Background()

	g := entity.NewGroup("g1", "n", "")
	require.NoError(t, s.Groups().Create(ctx, g))
	created := g.UpdatedAt

	require.NoError(t, s.Groups().Save(ctx, g))
	assert.True(t, g.UpdatedAt.After(created))
	assert.Equal(t, frozen, g.CreatedAt)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Groups().Create(ctx, entity.NewGroup("g1", "n", "")))

	g, err := s.Groups().FindByID(ctx, "g1")
	require.NoError(t, err)
	g.AddSample("s1")
	g.Name = "changed"

	again, err := s.Groups().FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "n", again.Name)
	assert.Empty(t, again.Samples)
}

func TestGroupFinders(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := entity.NewGroup("a", "a", "")
	a.AddReviewer("u1")
	b := entity.NewGroup("b", "b", "")
	require.NoError(t, s.Groups().Create(ctx, a))
	require.NoError(t, s.Groups().Create(ctx, b))
	require.NoError(t, b.Deactivate())
	require.NoError(t, s.Groups().Save(ctx, b))

	_, err := s.Groups().FindActiveByID(ctx, "b")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := s.Groups().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)

	mine, err := s.Groups().FindByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].ID)
}

func TestUserSave_KeepsRole(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := &entity.User{ID: "u1", Username: "a", Role: entity.RoleAdmin, State: entity.Active}
	require.NoError(t, s.Users().Create(ctx, u))

	u.Role = entity.RoleUser
	u.Username = "b"
	require.NoError(t, s.Users().Save(ctx, u))
	assert.Equal(t, entity.RoleAdmin, u.Role)

	got, err := s.Users().FindActiveByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Username)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	_, err = s.Users().FindAllActive(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Users().Save(ctx, &entity.User{ID: "ghost"}), repository.ErrNotFound)
}

func TestTemplatesOrdered(t *testing.T) {
	s := NewStore()
	s.SeedTemplates(
		&entity.Template{ID: "x", TemplateNo: 2},
		&entity.Template{ID: "y", TemplateNo: 1},
	)
	ts, err := s.Templates().FindAllOrderByTemplateNo(context.Background())
	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.Equal(t, "y", ts[0].ID)
}

func TestLabelNamesUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	cat, dog := entity.NewLabel("l1", "cat"), entity.NewLabel("l2", "dog")
	require.NoError(t, s.Labels().SaveAll(ctx, []*entity.Label{cat, dog}))

	dog.Rename("Cat")
	assert.ErrorIs(t, s.Labels().Save(ctx, dog), repository.ErrConflict)

	cat.Rename(" ")
	require.NoError(t, s.Labels().Save(ctx, cat))
	dog.Rename("  ")
	assert.ErrorIs(t, s.Labels().Save(ctx, dog), repository.ErrConflict)

	err := s.Labels().SaveAll(ctx, []*entity.Label{entity.NewLabel("l3", "bird"), entity.NewLabel("l4", "")})
	assert.ErrorIs(t, err, repository.ErrConflict)
	_, err = s.Labels().FindByID(ctx, "l3")
	assert.ErrorIs(t, err, repository.ErrNotFound, "nothing from a rejected batch is written")

	err = s.Labels().SaveAll(ctx, []*entity.Label{entity.NewLabel("l5", "fish"), entity.NewLabel("l6", "Fish")})
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := s.Labels().FindByID(ctx, "l2")
	require.NoError(t, err)
	assert.Equal(t, "dog", got.Name)
}
