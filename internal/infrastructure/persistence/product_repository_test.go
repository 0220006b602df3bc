package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "unit_price", "tax_percentage", "stock", "reorder_level", "active", "version"}).
			AddRow(productID, "TS-001", "Crew Neck Tee", decimal.NewFromFloat(12.50), decimal.NewFromInt(5), 100, 20, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "TS-001", product.Code)
		assert.Equal(t, 100, product.Stock)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromFloat(12.50)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByCode(t *testing.T) {
	t.Run("finds product by code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "stock", "active", "version"}).
			AddRow(productID, "TS-001", "Crew Neck Tee", 100, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("TS-001", 1).
			WillReturnRows(rows)

		product, err := repo.FindByCode(context.Background(), "TS-001")

		assert.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindActive(t *testing.T) {
	t.Run("finds active products ordered by code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "active", "version"}).
			AddRow(uuid.New(), "HD-002", "Fleece Hoodie", true, 1).
			AddRow(uuid.New(), "TS-001", "Crew Neck Tee", true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 ORDER BY code ASC`).
			WithArgs(true).
			WillReturnRows(rows)

		products, err := repo.FindActive(context.Background())

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, "HD-002", products[0].Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("applies category and active filters", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*category = \$\d.*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "code",
			OrderDir: "asc",
			Filters: map[string]interface{}{
				"category": "tops",
				"active":   true,
			},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Save(t *testing.T) {
	t.Run("saves product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		price := valueobject.NewMoneyFromFloat(12.50)
		product, err := catalog.NewProduct("TS-001", "Crew Neck Tee", price, decimal.NewFromInt(5), 100)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), product)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_ExistsByCode(t *testing.T) {
	t.Run("reports existing code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE code = \$1`).
			WithArgs("TS-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "TS-001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE code = \$1`).
			WithArgs("XX-999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCode(context.Background(), "XX-999")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
