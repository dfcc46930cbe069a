package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	"github.com/oksasatya/data-labeling-backend/internal/domain/repository"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var groupRowColumns = []string{"id", "name", "description", "is_active", "created_at", "updated_at", "samples", "reviewers"}

func TestGroupRepository_FindByID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM groups g\s+WHERE g.id = \$1$`).
		WithArgs("g1").
		WillReturnRows(pgxmock.NewRows(groupRowColumns).
			AddRow("g1", "batch", "desc", true, testTime, testTime, []string{"s1"}, []string{"u1", "u2"}))

	g, err := NewGroupRepository(mock).FindByID(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "batch", g.Name)
	assert.True(t, g.State.IsActive())
	assert.Equal(t, []string{"s1"}, g.Samples)
	assert.Equal(t, []string{"u1", "u2"}, g.Reviewers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepository_FindByID_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM groups g`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewGroupRepository(mock).FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepository_Create(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO groups`).
		WithArgs("g1", "batch", "desc", true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(testTime, testTime))

	g := entity.NewGroup("g1", "batch", "desc")
	require.NoError(t, NewGroupRepository(mock).Create(context.Background(), g))
	assert.Equal(t, testTime, g.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepository_Save_RewritesMembers(t *testing.T) {
	mock := newMock(t)
	later := testTime.Add(time.Minute)
	mock.ExpectQuery(`UPDATE groups`).
		WithArgs("g1", "batch", "desc", false).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(later))
	mock.ExpectExec(`DELETE FROM group_samples`).WithArgs("g1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM group_reviewers`).WithArgs("g1").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO group_samples`).
		WithArgs("g1", []string{"s1", "s2"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	g := entity.NewGroup("g1", "batch", "desc")
	g.Samples = []string{"s1", "s2"}
	require.NoError(t, g.Deactivate())
	require.NoError(t, NewGroupRepository(mock).Save(context.Background(), g))
	assert.Equal(t, later, g.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepository_FindByUserID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM groups g\s+WHERE EXISTS`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(groupRowColumns).
			AddRow("g1", "a", "", true, testTime, testTime, []string{}, []string{"u1"}).
			AddRow("g2", "b", "", false, testTime, testTime, []string{}, []string{"u1"}))

	groups, err := NewGroupRepository(mock).FindByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.False(t, groups[1].State.IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_SaveAll(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO labels`).
		WithArgs([]string{"l1", "l2"}, []string{"cat", "dog"}, []bool{true, true}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("l2", testTime, testTime).
			AddRow("l1", testTime, testTime))

	labels := []*entity.Label{entity.NewLabel("l1", "Cat"), entity.NewLabel("l2", "dog")}
	require.NoError(t, NewLabelRepository(mock).SaveAll(context.Background(), labels))
	assert.Equal(t, testTime, labels[0].CreatedAt)
	assert.Equal(t, testTime, labels[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_SaveAll_Empty(t *testing.T) {
	mock := newMock(t)
	require.NoError(t, NewLabelRepository(mock).SaveAll(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_UniqueViolationIsConflict(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "labels_name_key"}

	t.Run("save", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`UPDATE labels`).
			WithArgs("l2", "cat", true).
			WillReturnError(dup)

		err := NewLabelRepository(mock).Save(context.Background(), entity.NewLabel("l2", "cat"))
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save all", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO labels`).
			WithArgs([]string{"l1"}, []string{"cat"}, []bool{true}).
			WillReturnError(dup)

		err := NewLabelRepository(mock).SaveAll(context.Background(), []*entity.Label{entity.NewLabel("l1", "cat")})
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other errors pass through", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`UPDATE labels`).
			WithArgs("l2", "cat", true).
			WillReturnError(pgx.ErrNoRows)

		err := NewLabelRepository(mock).Save(context.Background(), entity.NewLabel("l2", "cat"))
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLabelRepository_FindByName(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM labels\s+WHERE name = \$1`).
		WithArgs("cat").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "is_active", "created_at", "updated_at"}).
			AddRow("l1", "cat", true, testTime, testTime))

	l, err := NewLabelRepository(mock).FindByName(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "l1", l.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepository_FindAllOrderByTemplateNo(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM templates\s+ORDER BY template_no ASC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "template_no", "content", "created_at", "updated_at"}).
			AddRow("t1", 1, "one", testTime, testTime).
			AddRow("t2", 2, "two", testTime, testTime))

	ts, err := NewTemplateRepository(mock).FindAllOrderByTemplateNo(context.Background())
	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.Equal(t, 2, ts[1].TemplateNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepository_Upsert(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO templates(.+)ON CONFLICT \(template_no\)`).
		WithArgs("t1", 1, "one").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("t0", testTime, testTime))

	tpl := &entity.Template{ID: "t1", TemplateNo: 1, Content: "one"}
	require.NoError(t, NewTemplateRepository(mock).Upsert(context.Background(), tpl))
	assert.Equal(t, "t0", tpl.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindActiveByID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1 AND is_active = TRUE$`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow("u1", "alice", "hash", "ADMIN", true, testTime, testTime))

	u, err := NewUserRepository(mock).FindActiveByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_RejectsUnknownRole(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1 AND is_active = TRUE$`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow("u1", "alice", "hash", "SUPERUSER", true, testTime, testTime))

	_, err := NewUserRepository(mock).FindActiveByID(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "unknown role")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_CommitLocksRows(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1 AND is_active = TRUE FOR UPDATE`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow("u1", "alice", "hash", "USER", true, testTime, testTime))
	mock.ExpectCommit()

	err := NewTxRunner(mock).RunInTx(context.Background(), func(tx repository.Store) error {
		_, err := tx.Users().FindActiveByID(context.Background(), "u1")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewTxRunner(mock).RunInTx(context.Background(), func(repository.Store) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_BeginError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	called := false
	err := NewTxRunner(mock).RunInTx(context.Background(), func(repository.Store) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
