package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(db), mock
}

func TestPostgres_CreateBrandUniqueViolation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "brands"`)).
		WithArgs("Dell").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_brands_name"})

	_, err := s.CreateBrand(context.Background(), "Dell")

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "uq_brands_name", dup.Constraint)
	assert.Equal(t, "nome", dup.Field())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteAssetNoRows(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "assets" WHERE "assets"."id" = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteAsset(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteSectorForeignKey(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sectors"`)).
		WithArgs(7).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "assets_sector_id_fkey"})

	err := s.DeleteSector(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RawErrorPassesThrough(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "brands"`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := s.ListBrands(context.Background())
	require.Error(t, err)
	assert.Equal(t, "connection reset by peer", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
