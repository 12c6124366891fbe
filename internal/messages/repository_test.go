package messages

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NormalizesAndStores(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "", "Is the wool overcoat lined?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	sut := NewRepository(db)
	m := &Message{Name: " Jane ", Email: " Jane@Example.COM ", Message: "Is the wool overcoat lined?"}
	require.NoError(t, sut.Create(context.Background(), m))

	assert.NotEmpty(t, m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RejectsIncompleteSubmission(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sut := NewRepository(db)

	err = sut.Create(context.Background(), &Message{Name: "Jane", Email: "not-an-email", Message: "hi"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	err = sut.Create(context.Background(), &Message{Name: "", Email: "jane@example.com", Message: "hi"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	err = sut.Create(context.Background(), &Message{Name: "Jane", Email: "jane@example.com", Message: "   "})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestList_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, email, phone, message, created_at").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "message", "created_at"}).
			AddRow("m2", "Abel", "abel@example.com", "0911000000", "Order update?", now).
			AddRow("m1", "Jane", "jane@example.com", "", "Sizing question", now.Add(-time.Hour)))

	sut := NewRepository(db)
	msgs, err := sut.List(context.Background())
	require.NoError(t, err)

	require.Len(t, msgs, 2)
	assert.Equal(t, "Abel", msgs[0].Name)
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM contact_messages").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	sut := NewRepository(db)
	assert.ErrorIs(t, sut.Delete(context.Background(), "ghost"), ErrMessageNotFound)
}
