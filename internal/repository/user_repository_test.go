package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/utils"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func userColumns() []string {
	return []string{"id", "email", "username", "password_hash", "is_admin", "created_at", "updated_at"}
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ? ORDER BY `users`.`id` LIMIT ?")).
		WithArgs("alice@example.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "alice@example.com", "alice", "hash", false, now, now))

	user, err := repo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.Equal(t, uint64(1), user.ID)
	require.Equal(t, "alice", user.Username)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ? ORDER BY `users`.`id` LIMIT ?")).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.FindByEmail("nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySearchByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username LIKE ? AND id <> ? LIMIT ?")).
		WithArgs("%ali%", uint64(7), 10).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "alice@example.com", "alice", "hash", false, now, now).
			AddRow(2, "malik@example.com", "malik", "hash", false, now, now))

	users, err := repo.SearchByUsername("ali", 7, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "malik", users[1].Username)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` ORDER BY created_at ASC LIMIT ?")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "a@example.com", "a", "hash", false, now, now).
			AddRow(2, "b@example.com", "bb", "hash", true, now, now))

	users, total, err := repo.List(utils.PaginationParams{Offset: 0, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, users, 2)
	require.True(t, users[1].IsAdmin)

	require.NoError(t, mock.ExpectationsWereMet())
}
