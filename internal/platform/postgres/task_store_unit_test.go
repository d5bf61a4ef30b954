package postgres

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xdevs/task-manager-api/internal/domain"
	"github.com/10xdevs/task-manager-api/internal/store"
)

// fakeDBTX records the statement and arguments of the last ExecContext call
// and returns a canned result. It stands in for the database when the test
// only cares about the SQL the store emits.
type fakeDBTX struct {
	execQuery  string
	execArgs   []any
	execResult sql.Result
	execErr    error
}

func (f *fakeDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execQuery = query
	f.execArgs = args
	return f.execResult, f.execErr
}

func (f *fakeDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (f *fakeDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestNewPostgresTaskStore(t *testing.T) {
	t.Parallel()

	// Nil db is a programming error
	assert.Panics(t, func() {
		NewPostgresTaskStore(nil, nil)
	})

	// Nil logger falls back to the default
	db := &sql.DB{}
	s := NewPostgresTaskStore(db, nil)
	require.NotNil(t, s)
	assert.NotNil(t, s.logger)
}

// TestMutationsScopedToOwner verifies that Update and Delete never touch a
// row belonging to another user: the statements filter on user_id in addition
// to id, and zero affected rows surfaces as store.ErrTaskNotFound.
func TestMutationsScopedToOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("update of a foreign-owned task returns not found", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(uuid.New(), "Someone else's task", "")
		require.NoError(t, err)

		db := &fakeDBTX{execResult: fakeResult{rows: 0}}
		s := NewPostgresTaskStore(db, nil)

		err = s.Update(ctx, task)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		// The statement must constrain on the owner, with the owner bound
		// as a parameter, so a matching id alone can never update
		assert.Contains(t, db.execQuery, "user_id")
		require.Len(t, db.execArgs, 6)
		assert.Equal(t, task.ID, db.execArgs[4])
		assert.Equal(t, task.UserID, db.execArgs[5])
	})

	t.Run("delete of a foreign-owned task returns not found", func(t *testing.T) {
		t.Parallel()

		taskID := uuid.New()
		requesterID := uuid.New()

		db := &fakeDBTX{execResult: fakeResult{rows: 0}}
		s := NewPostgresTaskStore(db, nil)

		err := s.Delete(ctx, taskID, requesterID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		assert.Contains(t, db.execQuery, "user_id")
		require.Len(t, db.execArgs, 2)
		assert.Equal(t, taskID, db.execArgs[0])
		assert.Equal(t, requesterID, db.execArgs[1])
	})

	t.Run("update never sets user_id", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(uuid.New(), "Owned task", "")
		require.NoError(t, err)

		db := &fakeDBTX{execResult: fakeResult{rows: 1}}
		s := NewPostgresTaskStore(db, nil)

		require.NoError(t, s.Update(ctx, task))

		setClause := db.execQuery[strings.Index(db.execQuery, "SET"):strings.Index(db.execQuery, "WHERE")]
		assert.NotContains(t, setClause, "user_id")
	})
}

func TestWithTxReturnsIndependentStore(t *testing.T) {
	t.Parallel()

	base := NewPostgresTaskStore(&sql.DB{}, nil)
	tx := &sql.Tx{}

	txStore, ok := base.WithTx(tx).(*PostgresTaskStore)
	require.True(t, ok)

	assert.NotSame(t, base, txStore)
	assert.Same(t, tx, txStore.db)

	// The original store keeps its own handle
	assert.NotSame(t, base.db, txStore.db)
}
