package admin

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	sut := NewRoles(db)
	ok, err := sut.IsAdmin(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromote_RecordsPromoter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO admin_roles").
		WithArgs("u2", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	sut := NewRoles(db)
	require.NoError(t, sut.Promote(context.Background(), "u2", "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromote_RootAdminHasNoPromoter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO admin_roles").
		WithArgs("u1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sut := NewRoles(db)
	require.NoError(t, sut.Promote(context.Background(), "u1", ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemote_CascadesThroughPromotionTree(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// u2 plus the two admins u2 promoted are all removed.
	mock.ExpectExec("WITH RECURSIVE demoted").
		WithArgs("u2").
		WillReturnResult(sqlmock.NewResult(0, 3))

	sut := NewRoles(db)
	require.NoError(t, sut.Demote(context.Background(), "u2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemote_NotAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("WITH RECURSIVE demoted").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sut := NewRoles(db)
	assert.ErrorIs(t, sut.Demote(context.Background(), "ghost"), ErrNotAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"user_id", "promoted_by", "created_at"}).
		AddRow("u1", "", now).
		AddRow("u2", "u1", now)
	mock.ExpectQuery("SELECT (.+) FROM admin_roles").WillReturnRows(rows)

	sut := NewRoles(db)
	roles, err := sut.List(context.Background())
	require.NoError(t, err)

	require.Len(t, roles, 2)
	assert.Equal(t, "u1", roles[0].UserID)
	assert.Equal(t, "u1", roles[1].PromotedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}
