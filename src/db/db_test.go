package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	assert.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return gdb, mock
}

func TestGetDbReturnsInjectedHandle(t *testing.T) {
	gdb, _ := mockDB(t)
	NewDB(gdb)
	assert.Same(t, gdb, GetDb())
}

func TestLockForUpdateAddsClauseOnPostgres(t *testing.T) {
	gdb, mock := mockDB(t)
	mock.ExpectQuery(`SELECT .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var rows []struct{ ID uint }
	err := LockForUpdate(gdb.Table("events")).Find(&rows).Error
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockForUpdateSkippedOnSqlite(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, gdb.Exec("CREATE TABLE events (id integer primary key)").Error)

	var rows []struct{ ID uint }
	err = LockForUpdate(gdb.Table("events")).Find(&rows).Error
	assert.NoError(t, err)
}
