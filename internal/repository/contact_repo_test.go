package repository

import (
	"context"
	"testing"
	"time"

	"github.com/codebykhassan/contact-management-app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactRepoMock(t *testing.T) (pgxmock.PgxPoolIface, ContactRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewContactRepository(mock)
}

func TestContactRepository_Create(t *testing.T) {
	mock, repo := newContactRepoMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO contacts`).
		WithArgs(7, "Alice", "alice@example.com", "+123456", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	contact := &model.Contact{UserID: 7, Name: "Alice", Email: "alice@example.com", Phone: "+123456"}
	err := repo.Create(context.Background(), contact)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), contact.ID)
	assert.Equal(t, now, contact.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindByID_NotFound(t *testing.T) {
	mock, repo := newContactRepoMock(t)

	mock.ExpectQuery(`FROM contacts WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	contact, err := repo.FindByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, contact)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindPage_OwnerScoped(t *testing.T) {
	mock, repo := newContactRepoMock(t)
	now := time.Now()
	ownerID := 7

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`FROM contacts WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(ownerID, 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "photo", "created_at"}).
			AddRow(int64(1), ownerID, "Alice", "alice@example.com", "+123456", nil, now))

	contacts, total, err := repo.FindPage(context.Background(), model.ContactFilter{
		OwnerID:   &ownerID,
		SortBy:    "created_at",
		SortOrder: "DESC",
		Limit:     10,
		Offset:    0,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Alice", contacts[0].Name)
	assert.Equal(t, ownerID, contacts[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindPage_SearchUsesSubstringMatch(t *testing.T) {
	mock, repo := newContactRepoMock(t)
	ownerID := 7

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts WHERE user_id = \$1 AND \(name LIKE \$2 OR email LIKE \$2\)`).
		WithArgs(ownerID, "%ali%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`WHERE user_id = \$1 AND \(name LIKE \$2 OR email LIKE \$2\) ORDER BY name ASC LIMIT \$3 OFFSET \$4`).
		WithArgs(ownerID, "%ali%", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "photo", "created_at"}))

	contacts, total, err := repo.FindPage(context.Background(), model.ContactFilter{
		OwnerID:   &ownerID,
		Search:    "ali",
		SortBy:    "name",
		SortOrder: "ASC",
		Limit:     10,
		Offset:    0,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, contacts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindPage_AdminUnscoped(t *testing.T) {
	mock, repo := newContactRepoMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`FROM contacts ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "photo", "created_at"}).
			AddRow(int64(1), 7, "Alice", "alice@example.com", "+123456", nil, now).
			AddRow(int64(2), 8, "Bob", "bob@example.com", "+654321", nil, now))

	contacts, total, err := repo.FindPage(context.Background(), model.ContactFilter{
		SortBy:    "created_at",
		SortOrder: "DESC",
		Limit:     10,
		Offset:    0,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, contacts, 2)
	assert.Equal(t, 7, contacts[0].UserID)
	assert.Equal(t, 8, contacts[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Update(t *testing.T) {
	mock, repo := newContactRepoMock(t)

	mock.ExpectExec(`UPDATE contacts SET name = \$1, email = \$2, phone = \$3, photo = \$4 WHERE id = \$5`).
		WithArgs("Alice B", "aliceb@example.com", "+123456", pgxmock.AnyArg(), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	contact := &model.Contact{ID: 3, Name: "Alice B", Email: "aliceb@example.com", Phone: "+123456"}
	err := repo.Update(context.Background(), contact)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Delete(t *testing.T) {
	mock, repo := newContactRepoMock(t)

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newContactRepoMock(t)

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 3)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
