package payments

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func methodRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "type", "account_number", "account_name", "phone_number",
		"instructions", "is_active", "display_order", "created_at",
	})
}

func TestListActive_OrdersByDisplayOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM payment_methods\\s+WHERE is_active").
		WillReturnRows(methodRows().
			AddRow("m1", "Telebirr", "mobile_money", "", "", "0911000000", "Send to this number", true, 0, now).
			AddRow("m2", "CBE", "bank_transfer", "1000012345", "Dot Design", "", "", true, 1, now))

	sut := NewRepository(db)
	methods, err := sut.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, methods, 2)
	assert.Equal(t, "Telebirr", methods[0].Name)
	assert.Equal(t, "bank_transfer", methods[1].Type)
}

func TestCreate_GeneratesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO payment_methods").
		WithArgs(sqlmock.AnyArg(), "Telebirr", "mobile_money", "", "", "0911000000", "", true, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sut := NewRepository(db)
	m := &Method{Name: "Telebirr", Type: "mobile_money", PhoneNumber: "0911000000", IsActive: true}
	require.NoError(t, sut.Create(context.Background(), m))

	assert.NotEmpty(t, m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE payment_methods").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sut := NewRepository(db)
	err = sut.Update(context.Background(), &Method{ID: "ghost", Name: "x", Type: "bank_transfer"})
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM payment_methods").
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	sut := NewRepository(db)
	require.NoError(t, sut.Delete(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM payment_methods").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sut := NewRepository(db)
	assert.ErrorIs(t, sut.Delete(context.Background(), "ghost"), ErrMethodNotFound)
}
