package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormLotRepository_FindByLabel(t *testing.T) {
	t.Run("finds existing lot", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLotRepository(gormDB)

		lotID := uuid.New()
		tenantID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "label", "product_id"}).
			AddRow(lotID, tenantID, "M-001", productID)

		mock.ExpectQuery(`SELECT \* FROM "stock_lots" WHERE tenant_id = \$1 AND product_id = \$2 AND label = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, productID, "M-001", 1).
			WillReturnRows(rows)

		lot, err := repo.FindByLabel(context.Background(), tenantID, productID, "M-001")

		assert.NoError(t, err)
		require.NotNil(t, lot)
		assert.Equal(t, lotID, lot.ID)
		assert.Equal(t, "M-001", lot.Label)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing lot", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLotRepository(gormDB)

		tenantID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_lots" WHERE tenant_id = \$1 AND product_id = \$2 AND label = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, productID, "MISSING", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		lot, err := repo.FindByLabel(context.Background(), tenantID, productID, "MISSING")

		assert.Nil(t, lot)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLotRepository_FindExpiringOn(t *testing.T) {
	t.Run("queries the full calendar day window", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLotRepository(gormDB)

		day := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
		dayStart := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "label", "product_id", "expiry_date"}).
			AddRow(uuid.New(), uuid.New(), "M-001", uuid.New(), dayStart)

		mock.ExpectQuery(`SELECT \* FROM "stock_lots" WHERE expiry_date >= \$1 AND expiry_date < \$2`).
			WithArgs(dayStart, dayEnd).
			WillReturnRows(rows)

		lots, err := repo.FindExpiringOn(context.Background(), day)

		assert.NoError(t, err)
		assert.Len(t, lots, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
