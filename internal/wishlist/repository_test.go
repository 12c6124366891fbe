package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO wishlist").
		WithArgs(sqlmock.AnyArg(), "u1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	sut := NewRepository(db)
	require.NoError(t, sut.Add(context.Background(), "u1", "p1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO wishlist").
		WithArgs(sqlmock.AnyArg(), "u1", "p1").
		WillReturnError(&pq.Error{Code: "23505"})

	sut := NewRepository(db)
	assert.ErrorIs(t, sut.Add(context.Background(), "u1", "p1"), ErrAlreadyInWishlist)
}

func TestRemove_AbsentEntryIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM wishlist").
		WithArgs("u1", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sut := NewRepository(db)
	require.NoError(t, sut.Remove(context.Background(), "u1", "ghost"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, product_id, created_at").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "created_at"}).
			AddRow("w1", "p1", now).
			AddRow("w2", "p2", now))

	sut := NewRepository(db)
	items, err := sut.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestContains(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	sut := NewRepository(db)
	ok, err := sut.Contains(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}
