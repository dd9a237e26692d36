package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTenantRepo wires a GORM *gorm.DB around a sqlmock connection, the
// same gorm.io/driver/postgres dialector production code uses, so the
// repository's actual SQL generation is exercised rather than a fake.
func newMockTenantRepo(t *testing.T) (*GormTenantRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormTenantRepository(gdb), mock
}

func TestGormTenantRepository_GetByID_Found(t *testing.T) {
	repo, mock := newMockTenantRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "admin_channel", "admin_channel_type"}).
		AddRow("tenant-1", "Acme Realty", "chat-1", "telegram")
	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
		WithArgs("tenant-1", 1).
		WillReturnRows(rows)

	tenant, err := repo.GetByID(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Realty", tenant.Name)
	assert.Equal(t, "telegram", tenant.AdminChannelType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTenantRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockTenantRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1`).
		WithArgs("missing", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	var notFound *domain.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTenantRepository_UpdateAdminChannel(t *testing.T) {
	repo, mock := newMockTenantRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tenants" SET`).
		WithArgs("chat-42", "telegram", sqlmock.AnyArg(), "tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateAdminChannel(context.Background(), "tenant-1", "chat-42", "telegram")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
